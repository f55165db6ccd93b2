// Package logsheet renders a daily log record's 96-slot duty grid as the
// classic four-row log sheet: one row per duty status, one column per
// 15-minute slot, with the occupied row filled for each slot.
package logsheet

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"hos-planner-service/internal/domain"
)

const (
	slotWidth  = 8
	rowHeight  = 60
	marginX    = 16
	marginY    = 16
	gridWidth  = domain.GridSlots * slotWidth
	gridHeight = 4 * rowHeight
)

var (
	background = color.RGBA{255, 255, 255, 255}
	gridLine   = color.RGBA{200, 200, 200, 255}
	hourLine   = color.RGBA{120, 120, 120, 255}

	statusRows = []domain.DutyStatus{
		domain.StatusOffDuty,
		domain.StatusSleeperBerth,
		domain.StatusDriving,
		domain.StatusOnDutyNotDriving,
	}

	statusColors = map[domain.DutyStatus]color.RGBA{
		domain.StatusOffDuty:          {76, 175, 80, 255},
		domain.StatusSleeperBerth:     {33, 150, 243, 255},
		domain.StatusDriving:          {244, 67, 54, 255},
		domain.StatusOnDutyNotDriving: {255, 152, 0, 255},
	}
)

// Render draws the record's duty grid.
func Render(rec domain.DailyLogRecord) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, gridWidth+2*marginX, gridHeight+2*marginY))
	draw.Draw(img, img.Bounds(), &image.Uniform{background}, image.Point{}, draw.Src)

	rowFor := make(map[domain.DutyStatus]int, len(statusRows))
	for i, s := range statusRows {
		rowFor[s] = i
	}

	// Filled cell per slot in the row of the slot's status.
	for slot, status := range rec.Grid {
		row, ok := rowFor[status]
		if !ok {
			continue
		}
		x0 := marginX + slot*slotWidth
		y0 := marginY + row*rowHeight
		cell := image.Rect(x0, y0, x0+slotWidth, y0+rowHeight)
		draw.Draw(img, cell, &image.Uniform{statusColors[status]}, image.Point{}, draw.Src)
	}

	// Row separators.
	for row := 0; row <= len(statusRows); row++ {
		y := marginY + row*rowHeight
		hline(img, marginX, marginX+gridWidth, y, hourLine)
	}

	// Quarter-hour columns, heavier on the hour.
	for slot := 0; slot <= domain.GridSlots; slot++ {
		x := marginX + slot*slotWidth
		c := gridLine
		if slot%4 == 0 {
			c = hourLine
		}
		vline(img, x, marginY, marginY+gridHeight, c)
	}

	return img
}

// WritePNG renders the record and encodes it as PNG.
func WritePNG(w io.Writer, rec domain.DailyLogRecord) error {
	if err := png.Encode(w, Render(rec)); err != nil {
		return fmt.Errorf("write log sheet png: %w", err)
	}
	return nil
}

func hline(img *image.RGBA, x0, x1, y int, c color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.Set(x, y, c)
	}
}

func vline(img *image.RGBA, x, y0, y1 int, c color.RGBA) {
	for y := y0; y <= y1; y++ {
		img.Set(x, y, c)
	}
}
