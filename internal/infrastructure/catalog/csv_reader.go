// Package catalog importa catálogos de herramientas desde CSV (name,quantity).
// Acepta archivos exportados en UTF-8, ISO-8859-1 o Windows-1252.
package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/herramientas-api/internal/application/dto"
	"github.com/jhoicas/herramientas-api/internal/domain"
	"github.com/jhoicas/herramientas-api/internal/domain/entity"
)

// Codificaciones soportadas.
const (
	EncodingUTF8        = "utf8"
	EncodingLatin1      = "latin1"
	EncodingWindows1252 = "windows1252"
)

// Options configura la lectura del CSV.
type Options struct {
	Encoding string // utf8 (defecto), latin1, windows1252
	Comma    rune   // separador; 0 = ','
}

// Row fila leída del archivo con su número de línea (1-based).
type Row struct {
	Line    int
	Request dto.RegisterToolRequest
}

// decoder envuelve r para convertirlo a UTF-8 según la codificación indicada.
func decoder(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.ReplaceAll(encoding, "-", "")) {
	case "", EncodingUTF8:
		// Quita el BOM que agregan algunas hojas de cálculo.
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder()), nil
	case EncodingLatin1, "iso88591":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case EncodingWindows1252, "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("catalog: codificación no soportada %q", encoding)
}

// ReadCSV lee todas las filas. Una primera fila name,quantity (o nombre,cantidad) se trata como cabecera.
// Filas con menos de dos columnas se devuelven con campos vacíos; la validación la hace el caso de uso.
func ReadCSV(r io.Reader, opts Options) ([]Row, error) {
	in, err := decoder(r, opts.Encoding)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: leer CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(rows) == 0 && line == 1 && isHeader(rec) {
			continue
		}
		row := Row{Line: line}
		if len(rec) > 0 {
			row.Request.Name = rec[0]
		}
		if len(rec) > 1 {
			row.Request.Quantity = rec[1]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isHeader(rec []string) bool {
	if len(rec) < 2 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(rec[0]))
	second := strings.ToLower(strings.TrimSpace(rec[1]))
	return (first == "name" || first == "nombre") && (second == "quantity" || second == "cantidad")
}

// Registrar registra una herramienta; lo implementa *inventory.ToolUseCase.
type Registrar interface {
	RegisterTool(ctx context.Context, in dto.RegisterToolRequest) (*entity.Tool, error)
}

// Result resumen de una importación.
type Result struct {
	Imported     int
	Skipped      int
	SkippedLines []int
}

// Import registra cada fila; las inválidas se omiten y se cuentan. Un error de almacenamiento aborta.
func Import(ctx context.Context, r io.Reader, opts Options, reg Registrar) (Result, error) {
	var res Result
	rows, err := ReadCSV(r, opts)
	if err != nil {
		return res, err
	}
	for _, row := range rows {
		if _, err := reg.RegisterTool(ctx, row.Request); err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				res.Skipped++
				res.SkippedLines = append(res.SkippedLines, row.Line)
				continue
			}
			return res, fmt.Errorf("catalog: línea %d: %w", row.Line, err)
		}
		res.Imported++
	}
	return res, nil
}
