package httpapi

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/bagbupads/hiba-pneumo/internal/models"
)

// VitalSignsExportHeader 测量历史导出表头（医生端为法语界面）
var VitalSignsExportHeader = []string{
	"Date",
	"Température (°C)",
	"TA systolique (mmHg)",
	"TA diastolique (mmHg)",
	"Fréquence cardiaque (bpm)",
	"Fréquence respiratoire (/min)",
	"SpO2 (%)",
	"Sous oxygène",
	"Débit O2 (L/min)",
	"Hémoptysie",
	"Quantité hémoptysie",
	"Expectorations",
	"Couleur",
	"Aspect",
	"Notes",
}

// GenerateVitalSignsExport 生成测量历史 Excel 文件
// items 为 recorded_at 倒序的测量列表，为空时只生成表头
func GenerateVitalSignsExport(items []models.VitalSigns) ([]byte, error) {
	f := excelize.NewFile()
	// Note: Don't defer Close() here, because WriteTo needs the file to be open

	sheetName := "Mesures"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range VitalSignsExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	columnWidths := []float64{
		20, // Date
		16, // Température
		18, // TA systolique
		18, // TA diastolique
		22, // Fréquence cardiaque
		24, // Fréquence respiratoire
		10, // SpO2
		14, // Sous oxygène
		16, // Débit O2
		12, // Hémoptysie
		20, // Quantité hémoptysie
		16, // Expectorations
		14, // Couleur
		12, // Aspect
		40, // Notes
	}
	for i := range VitalSignsExportHeader {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if i < len(columnWidths) && columnWidths[i] > 0 {
			if err := f.SetColWidth(sheetName, col, col, columnWidths[i]); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}

	for rowIdx, item := range items {
		row := rowIdx + 2
		values := vitalSignsExportRow(item)
		for colIdx, value := range values {
			if value == nil || value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell value %s: %w", cell, err)
			}
		}
	}

	// 冻结表头
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}

	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}

	return buf.Bytes(), nil
}

// vitalSignsExportRow 按表头顺序展开一条测量
func vitalSignsExportRow(item models.VitalSigns) []any {
	values := make([]any, len(VitalSignsExportHeader))

	values[0] = item.RecordedAt.Format("2006-01-02 15:04:05")
	if item.Temperature != nil {
		values[1] = *item.Temperature
	}
	if item.SystolicBP != nil {
		values[2] = *item.SystolicBP
	}
	if item.DiastolicBP != nil {
		values[3] = *item.DiastolicBP
	}
	if item.HeartRate != nil {
		values[4] = *item.HeartRate
	}
	if item.RespiratoryRate != nil {
		values[5] = *item.RespiratoryRate
	}
	if item.SpO2 != nil {
		values[6] = *item.SpO2
	}
	values[7] = ouiNon(item.SpO2OnOxygen)
	if item.OxygenFlowRate != nil {
		values[8] = *item.OxygenFlowRate
	}
	values[9] = ouiNon(item.HemoptysisPresent)
	values[10] = string(item.HemoptysisQuantity)
	values[11] = ouiNon(item.SputumPresent)
	values[12] = string(item.SputumColor)
	values[13] = string(item.SputumAspect)
	if item.Notes != nil {
		values[14] = *item.Notes
	}

	return values
}

func ouiNon(b bool) string {
	if b {
		return "Oui"
	}
	return "Non"
}

// exportFileName 导出文件名，带日期后缀
func exportFileName(patientID string) string {
	return fmt.Sprintf("mesures_%s_%s.xlsx", patientID, time.Now().Format("20060102"))
}
