// Package importer reads Province/Canton/Parish trees from spreadsheets.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/xuri/excelize/v2"
)

var (
	ErrNoSheet       = errors.New("no sheets found in workbook")
	ErrMissingColumn = errors.New("header must name province, canton and parish columns")
)

// Stats reports how many data rows were read and skipped.
type Stats struct {
	Rows    int
	Skipped int
}

// column header aliases, compared lower-cased and without accents
var headerAliases = map[string]string{
	"provincia": "province",
	"province":  "province",
	"canton":    "canton",
	"parroquia": "parish",
	"parish":    "parish",
}

// ReadHierarchy parses the first sheet of an xlsx workbook. The first row is
// a header naming the provincia, canton and parroquia columns in any order;
// each following row adds one parish. Rows without province or canton are
// skipped, a row with an empty parish only declares the canton. Names keep
// their first-seen order and duplicates collapse.
func ReadHierarchy(r io.Reader) ([]model.ProvinceSeed, Stats, error) {
	var stats Stats

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, stats, ErrNoSheet
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, stats, ErrMissingColumn
	}

	cols, err := headerColumns(rows[0])
	if err != nil {
		return nil, stats, err
	}

	b := newTreeBuilder()
	for _, row := range rows[1:] {
		province := cell(row, cols["province"])
		canton := cell(row, cols["canton"])
		parish := cell(row, cols["parish"])
		if province == "" && canton == "" && parish == "" {
			continue
		}
		stats.Rows++
		if province == "" || canton == "" {
			stats.Skipped++
			continue
		}
		b.add(province, canton, parish)
	}

	return b.tree, stats, nil
}

func headerColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, 3)
	for i, name := range header {
		if key, ok := headerAliases[normalizeHeader(name)]; ok {
			if _, seen := cols[key]; !seen {
				cols[key] = i
			}
		}
	}
	if len(cols) != 3 {
		return nil, ErrMissingColumn
	}
	return cols, nil
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u").Replace(s)
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

type treeBuilder struct {
	tree      []model.ProvinceSeed
	provinces map[string]int
	cantons   map[[2]string]int
	parishes  map[[3]string]bool
}

func newTreeBuilder() *treeBuilder {
	return &treeBuilder{
		provinces: map[string]int{},
		cantons:   map[[2]string]int{},
		parishes:  map[[3]string]bool{},
	}
}

func (b *treeBuilder) add(province, canton, parish string) {
	pi, ok := b.provinces[province]
	if !ok {
		pi = len(b.tree)
		b.provinces[province] = pi
		b.tree = append(b.tree, model.ProvinceSeed{Name: province})
	}

	ckey := [2]string{province, canton}
	ci, ok := b.cantons[ckey]
	if !ok {
		ci = len(b.tree[pi].Cantons)
		b.cantons[ckey] = ci
		b.tree[pi].Cantons = append(b.tree[pi].Cantons, model.CantonSeed{Name: canton})
	}

	if parish == "" {
		return
	}
	pkey := [3]string{province, canton, parish}
	if b.parishes[pkey] {
		return
	}
	b.parishes[pkey] = true
	b.tree[pi].Cantons[ci].Parishes = append(b.tree[pi].Cantons[ci].Parishes, parish)
}
