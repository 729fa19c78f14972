package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/bububa/smart-chunker/components/document"
)

type Parser struct {
	password string
}

var _ document.Parser = (*Parser)(nil)

type Option func(*Parser)

func WithPassword(passwd string) Option {
	return func(p *Parser) {
		p.password = passwd
	}
}

func NewParser(opts ...Option) *Parser {
	ret := new(Parser)
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Parse writes every sheet as a title line followed by one line per
// non-empty row, cells joined with " | ".
func (p *Parser) Parse(ctx context.Context, reader *bytes.Reader, writer io.Writer) error {
	opts := make([]excelize.Options, 0, 1)
	if p.password != "" {
		opts = append(opts, excelize.Options{Password: p.password})
	}
	doc, err := excelize.OpenReader(reader, opts...)
	if err != nil {
		return err
	}
	defer doc.Close()
	for _, sheet := range doc.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeSheet(doc, sheet, writer); err != nil {
			return err
		}
	}
	return nil
}

func writeSheet(doc *excelize.File, sheet string, writer io.Writer) error {
	rows, err := doc.Rows(sheet)
	if err != nil {
		return err
	}
	defer rows.Close()
	var totalRows int
	for rows.Next() {
		row, err := rows.Columns()
		if err != nil {
			return err
		}
		cells := make([]string, 0, len(row))
		for _, cellValue := range row {
			if cellValue = strings.TrimSpace(cellValue); cellValue != "" {
				cells = append(cells, cellValue)
			}
		}
		if len(cells) == 0 {
			continue
		}
		if totalRows == 0 {
			if _, err := fmt.Fprintf(writer, "%s\n", sheet); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(writer, "%s\n", strings.Join(cells, " | ")); err != nil {
			return err
		}
		totalRows++
	}
	if err := rows.Error(); err != nil {
		return err
	}
	if totalRows > 0 {
		if _, err := writer.Write([]byte{'\n'}); err != nil {
			return err
		}
	}
	return nil
}
