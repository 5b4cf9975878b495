package csvsource

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-dashboard-api/infrastructure/datasource"
	"github.com/vfg2006/marketing-dashboard-api/internal/config"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
)

// Source lê os arquivos CSV do diretório de dados configurado
type Source struct {
	cfg config.Data
}

func New(cfg config.Data) datasource.MarketingDataSource {
	return &Source{cfg: cfg}
}

// LoadChannels carrega os três arquivos de canal preservando a ordem das
// linhas dentro de cada arquivo
func (s *Source) LoadChannels() (map[domain.Channel][]*domain.ChannelRecord, []domain.RowError, error) {
	tables := make(map[domain.Channel][]*domain.ChannelRecord, 3)
	var rowErrors []domain.RowError

	rows := 0
	files := s.cfg.ChannelFiles()
	for _, channel := range domain.Channels() {
		path := files[string(channel)]

		channelRecords, channelErrors, err := s.loadChannelFile(path)
		if err != nil {
			return nil, nil, err
		}

		tables[channel] = channelRecords
		rowErrors = append(rowErrors, channelErrors...)
		rows += len(channelRecords)
	}

	logrus.WithFields(logrus.Fields{
		"rows":          rows,
		"rejected_rows": len(rowErrors),
	}).Info("datasource: channel files loaded")

	return tables, rowErrors, nil
}

func (s *Source) loadChannelFile(path string) ([]*domain.ChannelRecord, []domain.RowError, error) {
	rows, index, err := openCSV(path, channelColumns)
	if err != nil {
		return nil, nil, err
	}

	var (
		records   []*domain.ChannelRecord
		rowErrors []domain.RowError
	)

	for _, row := range rows {
		record, rowErr := parseChannelRow(path, row, index)
		if rowErr != nil {
			rowErrors = append(rowErrors, *rowErr)
			continue
		}

		records = append(records, record)
	}

	return records, rowErrors, nil
}

// LoadBusiness carrega a série diária de resultados do negócio
func (s *Source) LoadBusiness() ([]*domain.BusinessRecord, []domain.RowError, error) {
	path := s.cfg.BusinessPath()

	rows, index, err := openCSV(path, businessColumns)
	if err != nil {
		return nil, nil, err
	}

	var (
		records   []*domain.BusinessRecord
		rowErrors []domain.RowError
	)

	for _, row := range rows {
		record, rowErr := parseBusinessRow(path, row, index)
		if rowErr != nil {
			rowErrors = append(rowErrors, *rowErr)
			continue
		}

		records = append(records, record)
	}

	logrus.WithFields(logrus.Fields{
		"rows":          len(records),
		"rejected_rows": len(rowErrors),
	}).Info("datasource: business file loaded")

	return records, rowErrors, nil
}

// Fingerprint combina caminho, tamanho e data de modificação de cada
// arquivo de origem. Qualquer alteração nos arquivos muda a assinatura.
func (s *Source) Fingerprint() (string, error) {
	paths := make([]string, 0, 4)
	files := s.cfg.ChannelFiles()
	for _, channel := range domain.Channels() {
		paths = append(paths, files[string(channel)])
	}
	paths = append(paths, s.cfg.BusinessPath())

	parts := make([]string, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return "", errors.Wrapf(err, "erro ao inspecionar o arquivo %s", path)
		}

		parts = append(parts, fmt.Sprintf("%s:%d:%d", path, info.Size(), info.ModTime().UnixNano()))
	}

	return strings.Join(parts, ";"), nil
}

// openCSV abre o arquivo, lê todas as linhas e valida o esquema
func openCSV(path string, required []string) ([]csvRow, map[string]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "erro ao abrir o arquivo %s", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	// Linhas com número de campos diferente do cabeçalho são tratadas como
	// erro de linha, não de arquivo
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, &datasource.SchemaError{File: path, Column: required[0]}
	}
	if err != nil {
		return nil, nil, errors.Wrapf(err, "erro ao ler o cabeçalho de %s", path)
	}

	index := columnIndex(header)
	if column := missingColumn(index, required); column != "" {
		return nil, nil, &datasource.SchemaError{File: path, Column: column}
	}

	var rows []csvRow
	line := 1
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, nil, errors.Wrapf(err, "erro ao ler a linha %d de %s", line, path)
		}

		rows = append(rows, csvRow{line: line, fields: fields})
	}

	return rows, index, nil
}

type csvRow struct {
	line   int
	fields []string
}

func (r csvRow) cell(index map[string]int, column string) (string, bool) {
	i, ok := index[column]
	if !ok || i >= len(r.fields) {
		return "", false
	}

	return strings.TrimSpace(r.fields[i]), true
}

func parseChannelRow(path string, row csvRow, index map[string]int) (*domain.ChannelRecord, *domain.RowError) {
	record := &domain.ChannelRecord{}

	rawDate, ok := row.cell(index, "date")
	if !ok {
		return nil, rowError(path, row.line, "date", "célula ausente")
	}

	date, err := parseDateCell(rawDate)
	if err != nil {
		return nil, rowError(path, row.line, "date", err.Error())
	}
	record.Date = date

	record.Tactic = textCell(row, index, "tactic")
	record.State = textCell(row, index, "state")
	record.Campaign = textCell(row, index, "campaign")

	counts := map[string]*int64{
		"impressions": &record.Impressions,
		"clicks":      &record.Clicks,
	}
	for column, target := range counts {
		raw, ok := row.cell(index, column)
		if !ok {
			return nil, rowError(path, row.line, column, "célula ausente")
		}

		value, err := parseCountCell(raw)
		if err != nil {
			return nil, rowError(path, row.line, column, err.Error())
		}
		*target = value
	}

	amounts := map[string]*float64{
		"spend":              &record.Spend,
		"attributed_revenue": &record.AttributedRevenue,
	}
	for column, target := range amounts {
		raw, ok := row.cell(index, column)
		if !ok {
			return nil, rowError(path, row.line, column, "célula ausente")
		}

		value, err := parseAmountCell(raw)
		if err != nil {
			return nil, rowError(path, row.line, column, err.Error())
		}
		*target = value
	}

	return record, nil
}

func parseBusinessRow(path string, row csvRow, index map[string]int) (*domain.BusinessRecord, *domain.RowError) {
	record := &domain.BusinessRecord{}

	rawDate, ok := row.cell(index, "date")
	if !ok {
		return nil, rowError(path, row.line, "date", "célula ausente")
	}

	date, err := parseDateCell(rawDate)
	if err != nil {
		return nil, rowError(path, row.line, "date", err.Error())
	}
	record.Date = date

	counts := map[string]*int64{
		"orders":        &record.Orders,
		"new_orders":    &record.NewOrders,
		"new_customers": &record.NewCustomers,
	}
	for column, target := range counts {
		raw, ok := row.cell(index, column)
		if !ok {
			return nil, rowError(path, row.line, column, "célula ausente")
		}

		value, err := parseCountCell(raw)
		if err != nil {
			return nil, rowError(path, row.line, column, err.Error())
		}
		*target = value
	}

	amounts := map[string]*float64{
		"total_revenue": &record.TotalRevenue,
		"gross_profit":  &record.GrossProfit,
		"cogs":          &record.COGS,
	}
	for column, target := range amounts {
		raw, ok := row.cell(index, column)
		if !ok {
			return nil, rowError(path, row.line, column, "célula ausente")
		}

		value, err := parseAmountCell(raw)
		if err != nil {
			return nil, rowError(path, row.line, column, err.Error())
		}
		*target = value
	}

	return record, nil
}

func textCell(row csvRow, index map[string]int, column string) string {
	value, ok := row.cell(index, column)
	if !ok || value == "" {
		// Mesmo comportamento do painel original: texto ausente vira Unknown
		return "Unknown"
	}

	return value
}

// parseDateCell aceita apenas YYYY-MM-DD e normaliza para meia-noite UTC
func parseDateCell(raw string) (time.Time, error) {
	date, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("data inválida %q (esperado YYYY-MM-DD)", raw)
	}

	return date.UTC(), nil
}

// parseCountCell interpreta contagens (impressões, cliques, pedidos).
// Aceita representação decimal integral, rejeita qualquer outra coisa.
func parseCountCell(raw string) (int64, error) {
	if raw == "" {
		return 0, fmt.Errorf("célula vazia")
	}

	if value, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if value < 0 {
			return 0, fmt.Errorf("valor negativo %d", value)
		}
		return value, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("número inválido %q", raw)
	}
	if value != math.Trunc(value) {
		return 0, fmt.Errorf("contagem não inteira %q", raw)
	}
	if value < 0 {
		return 0, fmt.Errorf("valor negativo %s", raw)
	}

	return int64(value), nil
}

// parseAmountCell interpreta valores monetários não negativos
func parseAmountCell(raw string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("célula vazia")
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("número inválido %q", raw)
	}
	if value < 0 {
		return 0, fmt.Errorf("valor negativo %s", raw)
	}

	return value, nil
}

func rowError(path string, line int, column, reason string) *domain.RowError {
	return &domain.RowError{
		File:   path,
		Line:   line,
		Column: column,
		Reason: reason,
	}
}
