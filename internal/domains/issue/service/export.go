package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	finemodel "library-backend/internal/domains/fine/model"
	"library-backend/internal/domains/issue/model"
	"library-backend/pkg/logger"
)

const dateFormat = "2006-01-02 15:04:05"

// ExportRegister implements ServiceInterface.ExportRegister
func (s *issueService) ExportRegister(ctx context.Context) ([]byte, string, error) {
	details, err := s.repo.ListAllForExport(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load issue register: %w", err)
	}

	now := s.now()
	f, err := s.buildRegisterExcelFile(details, now)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build excel file: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to serialize excel file: %w", err)
	}

	filename := fmt.Sprintf("issue-register-%s.xlsx", now.Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (s *issueService) buildRegisterExcelFile(details []model.Detail, now time.Time) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := "Issue register"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{
		"ID",
		"Borrower",
		"Email",
		"Book",
		"Author",
		"ISBN",
		"Issue Date",
		"Due Date",
		"Return Date",
		"Status",
		"Overdue",
		"Days Late",
		"Fine",
	}

	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", "M1", headerStyle)
	}

	for i := range details {
		d := &details[i]
		rowNum := i + 2

		rowStr := func(col int) string {
			cell, _ := excelize.CoordinatesToCellName(col, rowNum)
			return cell
		}

		fine := finemodel.ClassifyDetail(d, now, s.fineRatePerDay)

		f.SetCellValue(sheetName, rowStr(1), d.ID.String())
		f.SetCellValue(sheetName, rowStr(2), d.UserName)
		f.SetCellValue(sheetName, rowStr(3), d.UserEmail)
		f.SetCellValue(sheetName, rowStr(4), d.BookTitle)
		f.SetCellValue(sheetName, rowStr(5), d.BookAuthor)
		f.SetCellValue(sheetName, rowStr(6), d.BookISBN)
		f.SetCellValue(sheetName, rowStr(7), d.IssueDate.Format(dateFormat))
		f.SetCellValue(sheetName, rowStr(8), d.DueDate.Format(dateFormat))

		if d.ReturnDate != nil {
			f.SetCellValue(sheetName, rowStr(9), d.ReturnDate.Format(dateFormat))
		} else {
			f.SetCellValue(sheetName, rowStr(9), nil)
		}

		f.SetCellValue(sheetName, rowStr(10), d.Status.String())
		f.SetCellValue(sheetName, rowStr(11), d.IsOverdue(now))
		f.SetCellValue(sheetName, rowStr(12), fine.DaysLate)
		f.SetCellValue(sheetName, rowStr(13), fine.Amount.InexactFloat64())
	}

	if err := f.SetColWidth(sheetName, "A", "M", 18); err != nil {
		logger.Warn("Failed to set register column widths", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return f, nil
}
