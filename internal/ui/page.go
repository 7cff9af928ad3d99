package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"sync"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// Page is the widget's current display. It implements Surface and keeps the
// last rendered View until the next successful lookup replaces it.
type Page struct {
	mu   sync.RWMutex
	view View
}

// NewPage creates an empty page with every slot unavailable.
func NewPage() *Page {
	slots := make(map[Slot]string, len(allSlots))
	for _, s := range allSlots {
		slots[s] = Unavailable
	}
	slots[SlotCity] = ""
	return &Page{view: View{Slots: slots}}
}

var allSlots = []Slot{
	SlotCity, SlotCurrentTemp, SlotWind, SlotHumidity, SlotPressure,
	SlotAirQuality, SlotCondition, SlotCurrentTime, SlotSunrise, SlotSunset,
}

// Display replaces the page content with v.
func (p *Page) Display(v View) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.view = v
}

// View returns a copy of the current content.
func (p *Page) View() View {
	p.mu.RLock()
	defer p.mu.RUnlock()

	slots := make(map[Slot]string, len(p.view.Slots))
	for k, v := range p.view.Slots {
		slots[k] = v
	}
	forecast := append([]ForecastEntry(nil), p.view.Forecast...)
	return View{Slots: slots, Forecast: forecast}
}

type pageData struct {
	Slots        map[string]string
	Forecast     []ForecastEntry
	Error        string
	ShowError    bool
	ErrorTimeout int64
}

// WriteHTML renders the page and the banner state to w.
func (p *Page) WriteHTML(w io.Writer, banner *Banner) error {
	v := p.View()
	data := pageData{
		Slots:        make(map[string]string, len(v.Slots)),
		Forecast:     v.Forecast,
		ErrorTimeout: ErrorDisplayDuration.Milliseconds(),
	}
	for k, s := range v.Slots {
		data.Slots[string(k)] = s
	}
	if banner != nil {
		data.Error, data.ShowError = banner.Message()
	}

	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
