package models

import "testing"

func TestBusinessTypeParse(t *testing.T) {
	var bt BusinessType
	for _, s := range []string{"Barbershop", "Retail", "Restaurant", "Service", "Other"} {
		if err := bt.Parse(s); err != nil {
			t.Errorf("Parse(%q): %v", s, err)
		}
		if string(bt) != s {
			t.Errorf("Parse(%q) set %q", s, bt)
		}
	}
	if err := bt.Parse("barbershop"); err == nil {
		t.Errorf("lowercase type should not parse")
	}
	if err := bt.Parse(""); err == nil {
		t.Errorf("empty type should not parse")
	}
}

func TestExpenseCategoryParse(t *testing.T) {
	var c ExpenseCategory
	for _, s := range []string{"Supplies", "Equipment", "Marketing", "Travel", "Other"} {
		if err := c.Parse(s); err != nil {
			t.Errorf("Parse(%q): %v", s, err)
		}
	}
	if err := c.Parse("Food"); err == nil {
		t.Errorf("unknown category should not parse")
	}
}

func TestUserRoleParse(t *testing.T) {
	var r UserRole
	if err := r.Parse("admin"); err != nil || r != UserRoleAdmin {
		t.Errorf("Parse(admin) = %q, %v", r, err)
	}
	if err := r.Parse("employee"); err != nil || r != UserRoleEmployee {
		t.Errorf("Parse(employee) = %q, %v", r, err)
	}
	if err := r.Parse("Admin"); err == nil {
		t.Errorf("case-sensitive role should not parse")
	}
}
