// Package export renders floor plan data as spreadsheets.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/office-seating/internal/dto"
)

const rosterSheet = "Seats"

var rosterHeader = []any{"Seat", "Status", "Assigned To", "Email", "Department", "Position X", "Position Y"}

// SeatRoster writes one row per seat of a layout, with the occupant if any,
// and returns the XLSX bytes.
func SeatRoster(layout dto.LayoutDTO, seats []dto.SeatDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", rosterSheet); err != nil {
		return nil, err
	}
	title := fmt.Sprintf("%s / %s (floor %d)", layout.BuildingName, layout.Name, layout.FloorNumber)
	if err := f.SetCellValue(rosterSheet, "A1", title); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(rosterSheet, "A2", &rosterHeader); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(rosterSheet, "A1", "G2", bold); err != nil {
		return nil, err
	}

	for i, s := range seats {
		row := []any{s.Identifier, s.Status, "", "", "", s.PositionX, s.PositionY}
		if u := s.AssignedUser; u != nil {
			row[2], row[3], row[4] = u.DisplayName, u.Email, u.Department
		}
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(rosterSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(rosterSheet, "A", "E", 20); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
