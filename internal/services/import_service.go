package services

import (
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"financehouse/internal/config"
	apperrors "financehouse/internal/errors"
	"financehouse/internal/fileparse"
	"financehouse/internal/logger"
	"financehouse/internal/models"
	"financehouse/internal/money"
)

// scoringConcurrency bounds the workers scoring candidate rows against the
// owner's existing transactions.
const scoringConcurrency = 4

// headerAliases maps accepted column names (pt-BR and English) to canonical
// field names.
var headerAliases = map[string]string{
	"date": "date", "data": "date",
	"amount": "amount", "valor": "amount", "value": "amount",
	"description": "description", "descricao": "description", "desc": "description",
	"category": "category", "categoria": "category",
	"type": "type", "tipo": "type",
}

// dateLayouts are the accepted spreadsheet date formats.
var dateLayouts = []string{"2006-01-02", "02/01/2006", "2006-01-02 15:04:05", "02-01-2006"}

// importRow is one parsed, validated spreadsheet row awaiting persistence.
type importRow struct {
	Row          int // 1-based data row number, excluding the header
	Date         time.Time
	AmountCents  int64
	Description  string
	CategoryName string
	Type         models.TransactionType
	candidate    duplicateCandidate
	flagged      bool
}

// importService runs the spreadsheet import pipeline:
// Received -> Parsed -> Validated -> Deduplicated -> Persisted (partial-ok).
type importService struct {
	db                 *gorm.DB
	parser             fileparse.Parser
	userService        UserServicer
	transactionService TransactionServicer
	notifier           Notifier
}

// NewImportService creates a new ImportServicer.
func NewImportService(
	db *gorm.DB,
	parser fileparse.Parser,
	userService UserServicer,
	transactionService TransactionServicer,
	notifier Notifier,
) ImportServicer {
	return &importService{
		db:                 db,
		parser:             parser,
		userService:        userService,
		transactionService: transactionService,
		notifier:           notifier,
	}
}

// ImportSpreadsheet ingests an uploaded spreadsheet. Row-level problems are
// collected and reported per row; they never abort the batch. Rows that look
// like duplicates are flagged but still imported unless opts.SkipFlagged is
// set. Every persisted row goes through the ordinary transaction creation
// path and therefore carries the same budget/goal side effects.
func (s *importService) ImportSpreadsheet(userID, filename, contentType string, data []byte, opts ImportOptions) (*ImportResult, error) {
	user, err := s.userService.GetActiveUser(userID)
	if err != nil {
		return nil, err
	}

	parsed, err := s.parser.Parse(filename, contentType, data)
	if err != nil {
		return nil, err
	}
	if len(parsed.Rows) == 0 {
		return nil, apperrors.ErrEmptyFile
	}
	cfg := config.Get()
	if len(parsed.Rows) > cfg.ImportMaxRows {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "spreadsheet has too many rows")
	}

	columns, err := mapHeader(parsed.Header)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		TotalRows:    len(parsed.Rows),
		Duplicates:   []DuplicateFlag{},
		RowErrors:    []ImportRowError{},
		Transactions: []models.Transaction{},
	}

	// Validate every row independently, in file order.
	valid := make([]*importRow, 0, len(parsed.Rows))
	for i, record := range parsed.Rows {
		row, rowErr := parseRow(i+1, record, columns, cfg.DefaultCurrency)
		if rowErr != nil {
			result.RowErrors = append(result.RowErrors, *rowErr)
			result.Failed++
			continue
		}
		valid = append(valid, row)
	}

	if len(valid) > 0 {
		if err := s.flagDuplicates(userID, valid, result, cfg); err != nil {
			return nil, err
		}
	}

	// Persist in file order; each row commits independently so one failure
	// never blocks the rest.
	for _, row := range valid {
		if row.flagged && opts.SkipFlagged {
			result.Skipped++
			continue
		}
		transaction, err := s.transactionService.CreateTransaction(userID, CreateTransactionInput{
			AmountCents:  row.AmountCents,
			Currency:     cfg.DefaultCurrency,
			Description:  row.Description,
			CategoryName: row.CategoryName,
			Type:         row.Type,
			Date:         row.Date,
			Imported:     true,
		})
		if err != nil {
			result.RowErrors = append(result.RowErrors, ImportRowError{Row: row.Row, Reason: err.Error()})
			result.Failed++
			continue
		}
		result.Transactions = append(result.Transactions, *transaction)
		result.Succeeded++
	}

	if result.Succeeded > 0 && !user.InitialDataLoaded {
		if err := s.userService.MarkInitialDataLoaded(userID); err != nil {
			logger.Get().Errorw("failed to mark initial data loaded", "user_id", userID, "error", err)
		}
	}

	s.notifier.ImportCompleted(userID, result.TotalRows, result.Succeeded, result.Failed)
	return result, nil
}

// flagDuplicates scores every valid row against the owner's existing
// transactions (concurrently, bounded) and against earlier rows of the same
// batch (sequentially, in file order, so "duplicate of an earlier row" is
// deterministic).
func (s *importService) flagDuplicates(userID string, rows []*importRow, result *ImportResult, cfg *config.Config) error {
	window := time.Duration(cfg.DuplicateDateWindowDays) * 24 * time.Hour
	minDate, maxDate := rows[0].Date, rows[0].Date
	for _, row := range rows {
		if row.Date.Before(minDate) {
			minDate = row.Date
		}
		if row.Date.After(maxDate) {
			maxDate = row.Date
		}
	}

	var existing []models.Transaction
	if err := s.db.Where("user_id = ? AND is_active = ? AND date BETWEEN ? AND ?",
		userID, true, minDate.Add(-window), maxDate.Add(window)).
		Find(&existing).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	existingCandidates := make([]duplicateCandidate, len(existing))
	for i := range existing {
		existingCandidates[i] = candidateFromTransaction(&existing[i])
	}

	// Score against history concurrently; results land in per-row slots so
	// the outcome is independent of scheduling.
	flags := make([]*DuplicateFlag, len(rows))
	g := new(errgroup.Group)
	g.SetLimit(scoringConcurrency)
	for i, row := range rows {
		g.Go(func() error {
			bestScore := 0.0
			bestIdx := -1
			for j := range existingCandidates {
				score := similarityScore(row.candidate, existingCandidates[j], cfg.DuplicateDateWindowDays)
				if score > bestScore {
					bestScore = score
					bestIdx = j
				}
			}
			if bestIdx >= 0 && bestScore >= cfg.DuplicateScoreThreshold {
				flags[i] = &DuplicateFlag{
					Row:                  row.Row,
					Score:                bestScore,
					Reason:               duplicateReason(bestScore, existing[bestIdx].Description, existing[bestIdx].Date),
					MatchedTransactionID: existing[bestIdx].ID,
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// In-batch comparison: each row against the rows before it in the file.
	for i, row := range rows {
		if flags[i] == nil {
			for j := 0; j < i; j++ {
				score := similarityScore(row.candidate, rows[j].candidate, cfg.DuplicateDateWindowDays)
				if score >= cfg.DuplicateScoreThreshold {
					flags[i] = &DuplicateFlag{
						Row:        row.Row,
						Score:      score,
						Reason:     duplicateReason(score, rows[j].Description, rows[j].Date),
						MatchedRow: rows[j].Row,
					}
					break
				}
			}
		}
		if flags[i] != nil {
			row.flagged = true
			result.Duplicates = append(result.Duplicates, *flags[i])
		}
	}
	return nil
}

// mapHeader resolves spreadsheet columns to canonical fields. Date, amount,
// description and category columns are required; type is optional.
func mapHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int)
	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(raw))
		name = models.NormalizeCategoryName(name)
		name = strings.ToLower(name)
		if canonical, ok := headerAliases[name]; ok {
			if _, exists := columns[canonical]; !exists {
				columns[canonical] = i
			}
		}
	}
	for _, required := range []string{"date", "amount", "description", "category"} {
		if _, ok := columns[required]; !ok {
			return nil, apperrors.WithMessage(apperrors.ErrMissingHeader, "missing required column: "+required)
		}
	}
	return columns, nil
}

// parseRow validates one data row. Every missing or malformed field reports
// a row-specific reason; the row is excluded, the batch continues.
func parseRow(rowNum int, record []string, columns map[string]int, currency string) (*importRow, *ImportRowError) {
	get := func(field string) string {
		idx, ok := columns[field]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	rawDate := get("date")
	if rawDate == "" {
		return nil, &ImportRowError{Row: rowNum, Field: "date", Reason: "date is required"}
	}
	date, ok := parseDate(rawDate)
	if !ok {
		return nil, &ImportRowError{Row: rowNum, Field: "date", Reason: "unrecognized date format: " + rawDate}
	}

	rawAmount := get("amount")
	if rawAmount == "" {
		return nil, &ImportRowError{Row: rowNum, Field: "amount", Reason: "amount is required"}
	}
	amount, err := money.ParseDecimal(rawAmount, currency)
	if err != nil || !amount.IsPositive() {
		return nil, &ImportRowError{Row: rowNum, Field: "amount", Reason: "amount must be a positive decimal: " + rawAmount}
	}

	description := get("description")
	if description == "" {
		return nil, &ImportRowError{Row: rowNum, Field: "description", Reason: "description is required"}
	}

	category := get("category")
	if category == "" {
		return nil, &ImportRowError{Row: rowNum, Field: "category", Reason: "category is required"}
	}

	txType, rowErr := resolveRowType(rowNum, get("type"), category)
	if rowErr != nil {
		return nil, rowErr
	}

	return &importRow{
		Row:          rowNum,
		Date:         date,
		AmountCents:  amount.Cents,
		Description:  description,
		CategoryName: category,
		Type:         txType,
		candidate:    newDuplicateCandidate(amount.Cents, date, description),
	}, nil
}

// resolveRowType reads the optional type column; when absent, income
// predefined categories import as income and everything else as expense.
func resolveRowType(rowNum int, rawType, category string) (models.TransactionType, *ImportRowError) {
	switch strings.ToLower(rawType) {
	case "income", "receita", "entrada":
		return models.TransactionTypeIncome, nil
	case "expense", "despesa", "saida":
		return models.TransactionTypeExpense, nil
	case "":
		normalized := models.NormalizeCategoryName(category)
		if models.IsPredefinedCategory(normalized, models.CategoryTypeIncome) &&
			!models.IsPredefinedCategory(normalized, models.CategoryTypeExpense) {
			return models.TransactionTypeIncome, nil
		}
		return models.TransactionTypeExpense, nil
	default:
		return "", &ImportRowError{Row: rowNum, Field: "type", Reason: "unrecognized type: " + rawType}
	}
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
