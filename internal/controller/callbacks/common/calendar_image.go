package common

import (
	"bytes"
	"image/color"
	"strconv"
	"time"

	"github.com/fogleman/gg"
	"github.com/lidiya-fiker/unity-bot/internal/calendar"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	cellSize        = 96.0
	gridPadding     = 24.0
	titleHeight     = 64.0
	weekdayHeight   = 36.0
	totalDaysInWeek = 7
	totalWeekRows   = 6
	dotRadius       = 6.0
	cellInset       = 4.0
)

// Цветовая схема
var (
	calBgColor      = color.RGBA{245, 246, 248, 255}
	calTitleColor   = color.RGBA{80, 85, 90, 220}
	calWeekdayColor = color.RGBA{110, 115, 120, 200}
	calDayColor     = color.RGBA{60, 64, 68, 255}
	calPastColor    = color.RGBA{190, 192, 195, 255}
	calCellColor    = color.NRGBA{255, 255, 255, 255}
	calPastCell     = color.NRGBA{235, 236, 238, 255}
	calTodayCell    = color.NRGBA{255, 99, 71, 60}
	calSlotDot      = color.RGBA{133, 193, 85, 255}
)

var weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// RenderMonthImage рисует месячную сетку календаря в PNG.
// Неделя начинается с понедельника, первая неделя дополняется
// хвостом предыдущего месяца как пустыми ячейками. Дни со слотами
// помечены зелёной точкой, прошедшие дни приглушены.
func RenderMonthImage(month time.Time, days []calendar.Day) ([]byte, error) {
	width := gridPadding*2 + cellSize*totalDaysInWeek
	height := gridPadding*2 + titleHeight + weekdayHeight + cellSize*totalWeekRows

	dc := gg.NewContext(int(width), int(height))
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(calBgColor)
	dc.Clear()

	// Заголовок
	dc.SetColor(calTitleColor)
	dc.DrawStringAnchored(month.Format("January 2006"), width/2, gridPadding+titleHeight/2, 0.5, 0.5)

	// Названия дней недели
	dc.SetColor(calWeekdayColor)
	for i, label := range weekdayLabels {
		x := gridPadding + cellSize*float64(i) + cellSize/2
		y := gridPadding + titleHeight + weekdayHeight/2
		dc.DrawStringAnchored(label, x, y, 0.5, 0.5)
	}

	offset := 0
	if len(days) > 0 {
		offset = (int(days[0].Date.Weekday()) + 6) % 7
	}

	gridTop := gridPadding + titleHeight + weekdayHeight
	for i, day := range days {
		col := (offset + i) % totalDaysInWeek
		row := (offset + i) / totalDaysInWeek

		x := gridPadding + cellSize*float64(col)
		y := gridTop + cellSize*float64(row)

		cellColor := calCellColor
		if day.IsPast {
			cellColor = calPastCell
		}
		dc.SetColor(cellColor)
		dc.DrawRectangle(x+cellInset, y+cellInset, cellSize-cellInset*2, cellSize-cellInset*2)
		dc.Fill()

		if day.IsToday {
			dc.SetColor(calTodayCell)
			dc.DrawRectangle(x+cellInset, y+cellInset, cellSize-cellInset*2, cellSize-cellInset*2)
			dc.Fill()
		}

		if day.IsPast {
			dc.SetColor(calPastColor)
		} else {
			dc.SetColor(calDayColor)
		}
		dc.DrawStringAnchored(strconv.Itoa(day.Date.Day()), x+cellSize/2, y+cellSize/2-6, 0.5, 0.5)

		if day.HasSlots {
			dc.SetColor(calSlotDot)
			dc.DrawCircle(x+cellSize/2, y+cellSize-cellInset-12, dotRadius)
			dc.Fill()
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
