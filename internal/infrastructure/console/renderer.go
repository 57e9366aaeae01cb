package console

import (
	"crypto-price-sync/internal/application/dto"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	title       = "Crypto Prices"
	separator   = "----------------------------------------"
	helpLine    = "[r] refresh  [q] quit"
	loadingLine = "Loading prices..."
	refreshLine = "Refreshing prices..."
	noDataLine  = "No data available"
)

// Renderer dibuja el estado como texto plano
type Renderer struct {
	out      io.Writer
	printer  *message.Printer
	location *time.Location
}

// NewRenderer crea un renderer; los números usan separadores de miles en inglés
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{
		out:      out,
		printer:  message.NewPrinter(language.English),
		location: time.Local,
	}
}

// WithLocation fija la zona horaria de "Last update"
func (r *Renderer) WithLocation(loc *time.Location) *Renderer {
	r.location = loc
	return r
}

// Render escribe una vista completa del estado
func (r *Renderer) Render(resp dto.PricesResponse) error {
	var b strings.Builder

	b.WriteString(separator + "\n")
	b.WriteString(title + "\n")

	if resp.Banner != "" {
		b.WriteString("! " + resp.Banner + "\n")
	}
	if resp.LastUpdatedAt != nil {
		b.WriteString("Last update: " + resp.LastUpdatedAt.In(r.location).Format("15:04:05") + "\n")
	}
	if resp.ErrorMessage != "" {
		b.WriteString("Error: " + resp.ErrorMessage + "\n")
	}

	switch {
	case resp.IsLoading && len(resp.Quotes) == 0:
		b.WriteString(loadingLine + "\n")
	case resp.IsRefreshing:
		b.WriteString(refreshLine + "\n")
	}

	if len(resp.Quotes) == 0 && !resp.IsLoading {
		b.WriteString(noDataLine + "\n")
	}

	for _, q := range resp.Quotes {
		b.WriteString(r.quoteLine(q) + "\n")
	}

	b.WriteString(helpLine + "\n")

	_, err := io.WriteString(r.out, b.String())
	return err
}

// quoteLine arma "<icon> Name (SYM)  $12,345.67  ▲ 1.23%"
func (r *Renderer) quoteLine(q dto.QuoteData) string {
	arrow := "▲"
	if q.Direction == dto.DirectionDown {
		arrow = "▼"
	}

	label := fmt.Sprintf("%s %s (%s)", q.Icon, q.Name, q.Symbol)
	price := r.FormatPrice(q.Price)

	return fmt.Sprintf("%-20s %16s  %s %.2f%%", label, price, arrow, math.Abs(q.Change24h))
}

// FormatPrice formats a USD price with two decimals and thousands grouping
func (r *Renderer) FormatPrice(price float64) string {
	return r.printer.Sprintf("$%.2f", price)
}
