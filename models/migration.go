package models

import (
	"log"

	"bitbucket.org/mmdatafocus/bizmanager_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&User{}, &Business{}, &Employee{},
		&DailySale{}, &Expense{}, &MonthlyCommission{},
		&Activity{},
		&DashboardMessageRecord{}, &IdempotencyKey{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
