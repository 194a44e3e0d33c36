package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// BuildReportWorkbook renders a ranged report into a spreadsheet: a summary
// sheet, the per-business split and the sales feed. The caller streams the
// file to the response.
func BuildReportWorkbook(report *RangedReportResponse) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Summary"
	f.SetSheetName("Sheet1", sheetName)

	f.SetCellValue(sheetName, "A1", "Range")
	f.SetCellValue(sheetName, "B1", report.RangeType)
	f.SetCellValue(sheetName, "A2", "From")
	f.SetCellValue(sheetName, "B2", report.From.Format("2006-01-02"))
	f.SetCellValue(sheetName, "A3", "To")
	f.SetCellValue(sheetName, "B3", report.To.AddDate(0, 0, -1).Format("2006-01-02"))
	f.SetCellValue(sheetName, "A5", "TotalRevenue")
	f.SetCellValue(sheetName, "B5", report.TotalRevenue.StringFixed(2))
	f.SetCellValue(sheetName, "A6", "TotalExpenses")
	f.SetCellValue(sheetName, "B6", report.TotalExpenses.StringFixed(2))
	f.SetCellValue(sheetName, "A7", "NetProfit")
	f.SetCellValue(sheetName, "B7", report.NetProfit.StringFixed(2))
	f.SetCellValue(sheetName, "A8", "TotalServices")
	f.SetCellValue(sheetName, "B8", report.TotalServices)

	distSheet := "Businesses"
	if _, err := f.NewSheet(distSheet); err != nil {
		return nil, err
	}
	f.SetCellValue(distSheet, "A1", "Business")
	f.SetCellValue(distSheet, "B1", "Type")
	f.SetCellValue(distSheet, "C1", "Revenue")
	f.SetCellValue(distSheet, "D1", "Percent")
	for i, d := range report.BusinessDistribution {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(distSheet, "A"+row, d.Name)
		f.SetCellValue(distSheet, "B"+row, d.Type)
		f.SetCellValue(distSheet, "C"+row, d.Revenue.StringFixed(2))
		f.SetCellValue(distSheet, "D"+row, d.Percent.StringFixed(2))
	}

	salesSheet := "Sales"
	if _, err := f.NewSheet(salesSheet); err != nil {
		return nil, err
	}
	f.SetCellValue(salesSheet, "A1", "Date")
	f.SetCellValue(salesSheet, "B1", "Business")
	f.SetCellValue(salesSheet, "C1", "Employee")
	f.SetCellValue(salesSheet, "D1", "Total")
	f.SetCellValue(salesSheet, "E1", "Services")
	f.SetCellValue(salesSheet, "F1", "Status")
	for i, s := range report.RecentSales {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(salesSheet, "A"+row, s.SaleDate.Format("2006-01-02"))
		f.SetCellValue(salesSheet, "B"+row, s.BusinessName)
		f.SetCellValue(salesSheet, "C"+row, s.EmployeeName)
		f.SetCellValue(salesSheet, "D"+row, s.TotalSales.StringFixed(2))
		f.SetCellValue(salesSheet, "E"+row, s.Services)
		f.SetCellValue(salesSheet, "F"+row, s.Status)
	}

	return f, nil
}
