package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"classroom-hub/internal/model"
	"classroom-hub/internal/repository"
)

// ── export errors ──

var (
	ErrExportNoAssignments = errors.New("no room assignments to export")
	ErrExportGenerateFail  = errors.New("failed to generate Excel file")
)

// ExportService builds downloadable reports of the weekly room allocation.
//
// The export returns a bytes.Buffer; the handler layer sets the HTTP headers
// and streams it. Layout: one sheet per shift, rows are time slots, columns
// are days of week (1 = Sunday), cells carry class code, room code and the
// teacher name.
type ExportService interface {
	// ExportRoomAllocation exports every occupying slot as an Excel grid.
	ExportRoomAllocation(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var exportDayNames = map[int]string{
	1: "Sunday", 2: "Monday", 3: "Tuesday", 4: "Wednesday",
	5: "Thursday", 6: "Friday", 7: "Saturday",
}

func (s *exportService) ExportRoomAllocation(ctx context.Context) (*bytes.Buffer, string, error) {
	schedules, err := s.repo.ClassSchedule.ListOccupying(ctx)
	if err != nil {
		s.logger.Error("list occupying schedules failed", zap.Error(err))
		return nil, "", err
	}
	if len(schedules) == 0 {
		return nil, "", ErrExportNoAssignments
	}

	// Index: "shift:slotID:dayOfWeek" → cell lines, plus the unique slots
	// per shift for row construction.
	type slotRow struct {
		slotID    string
		name      string
		startTime string
		endTime   string
	}

	cellIndex := make(map[string][]string)
	slotsByShift := make(map[model.Shift][]slotRow)
	slotSeen := make(map[string]bool)

	for i := range schedules {
		sched := &schedules[i]
		if sched.TimeSlot == nil {
			continue
		}
		ts := sched.TimeSlot

		text := "-"
		if sched.Class != nil {
			text = sched.Class.Code
			if sched.PracticeGroup > 0 {
				text += fmt.Sprintf(".%d", sched.PracticeGroup)
			}
		}
		if sched.Room != nil {
			text += " @ " + sched.Room.Code
		}
		if sched.Teacher != nil {
			text += " / " + sched.Teacher.FullName
		}

		key := fmt.Sprintf("%s:%s:%d", ts.Shift, ts.TimeSlotID, sched.DayOfWeek)
		cellIndex[key] = append(cellIndex[key], text)

		if !slotSeen[ts.TimeSlotID] {
			slotSeen[ts.TimeSlotID] = true
			slotsByShift[ts.Shift] = append(slotsByShift[ts.Shift], slotRow{
				slotID:    ts.TimeSlotID,
				name:      ts.Name,
				startTime: ts.StartTime,
				endTime:   ts.EndTime,
			})
		}
	}

	shiftOrder := []model.Shift{model.ShiftMorning, model.ShiftAfternoon, model.ShiftEvening}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	wroteSheet := false
	for _, shift := range shiftOrder {
		rows := slotsByShift[shift]
		if len(rows) == 0 {
			continue
		}
		sort.Slice(rows, func(i, j int) bool {
			return rows[i].startTime < rows[j].startTime
		})

		sheetName := model.DisplayName(string(shift))
		idx, err := f.NewSheet(sheetName)
		if err != nil {
			s.logger.Error("create sheet failed", zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
		if !wroteSheet {
			f.SetActiveSheet(idx)
			wroteSheet = true
		}

		f.SetColWidth(sheetName, "A", "A", 14)
		f.SetColWidth(sheetName, "B", "B", 14)
		for day := 1; day <= 7; day++ {
			col := exportColName(2 + day)
			f.SetColWidth(sheetName, col, col, 28)
		}

		f.SetCellValue(sheetName, "A1", "Period")
		f.SetCellValue(sheetName, "B1", "Time")
		for day := 1; day <= 7; day++ {
			f.SetCellValue(sheetName, exportCell(exportColName(2+day), 1), exportDayNames[day])
		}
		f.SetCellStyle(sheetName, "A1", exportCell(exportColName(9), 1), headerStyle)

		row := 2
		for _, sr := range rows {
			f.SetCellValue(sheetName, exportCell("A", row), sr.name)
			f.SetCellValue(sheetName, exportCell("B", row), fmt.Sprintf("%s-%s", sr.startTime, sr.endTime))
			for day := 1; day <= 7; day++ {
				key := fmt.Sprintf("%s:%s:%d", shift, sr.slotID, day)
				cellText := "-"
				if lines, ok := cellIndex[key]; ok {
					cellText = lines[0]
					for _, extra := range lines[1:] {
						cellText += "\n" + extra
					}
				}
				f.SetCellValue(sheetName, exportCell(exportColName(2+day), row), cellText)
			}
			row++
		}
	}

	f.DeleteSheet("Sheet1")

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write Excel failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, "room_allocation.xlsx", nil
}

// ── helpers ──

func exportColName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx)
	return name
}

func exportCell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
