package importer

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"salesdash/internal/grid"
	"salesdash/internal/log"
	"salesdash/internal/model"
	"salesdash/internal/parser"
	"salesdash/internal/recon"
	"salesdash/internal/resolver"
	"salesdash/internal/store"
)

// ErrAcknowledgeRequired is returned when a save is confirmed while the
// reconciliation shows an unexplained discrepancy the operator has not
// acknowledged.
var ErrAcknowledgeRequired = errors.New("unexplained total discrepancy requires operator acknowledgment")

// Coordinator drives uploads through parse, preview and save. Sessions are
// independent; only the session map itself is guarded.
type Coordinator struct {
	store     *store.Store
	log       *log.Logger
	batchSize int

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewCoordinator creates an upload coordinator.
func NewCoordinator(st *store.Store, logger *log.Logger, batchSize int) *Coordinator {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &Coordinator{
		store:     st,
		log:       logger.WithComponent("importer"),
		batchSize: batchSize,
		sessions:  make(map[string]*Session),
	}
}

// ParseOptions configures one upload parse.
type ParseOptions struct {
	Filename    string
	Operator    string
	ManualTotal *int // used when the source format prints no grand total
}

// Get returns a session by ID.
func (c *Coordinator) Get(id string) (*Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[id]
	return s, ok
}

func (c *Coordinator) register(s *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[s.ID] = s
}

// Parse runs the full synchronous pipeline up to the preview suspension
// point: load, detect, extract, resolve, aggregate, reconcile, flag
// duplicates. Nothing is written; the result is owned by the session.
func (c *Coordinator) Parse(data []byte, opts ParseOptions) (*Session, error) {
	session := &Session{
		ID:        uuid.NewString(),
		Filename:  opts.Filename,
		Operator:  opts.Operator,
		State:     StateParsing,
		CreatedAt: time.Now(),
	}
	c.register(session)

	result, dupes, err := c.parse(data, opts)

	session.mu.Lock()
	if err != nil {
		session.State = StateError
		session.Error = err.Error()
		session.mu.Unlock()
		c.log.Warn("parse failed", "file", opts.Filename, "err", err)
		return session, err
	}
	session.Result = result
	session.DuplicateCount = dupes
	session.State = StatePreview
	session.mu.Unlock()
	c.log.Info("parse complete",
		"file", opts.Filename,
		"format", result.DetectedFormat,
		"rows", len(result.Rows),
		"totalBoxes", result.TotalBoxes,
		"recon", result.Recon.Status)
	return session, nil
}

func (c *Coordinator) parse(data []byte, opts ParseOptions) (*model.ParseResult, int, error) {
	wb, err := grid.Load(data, opts.Filename)
	if err != nil {
		return nil, 0, err
	}

	format, err := parser.Detect(wb)
	if err != nil {
		return nil, 0, err
	}
	extractor, err := parser.ForFormat(format)
	if err != nil {
		return nil, 0, err
	}
	extracted, err := extractor.Extract(wb)
	if err != nil {
		return nil, 0, fmt.Errorf("extract %s: %w", format, err)
	}

	chains, err := c.store.ListChains()
	if err != nil {
		return nil, 0, err
	}
	registry, err := c.store.ListStores()
	if err != nil {
		return nil, 0, err
	}
	resolved := resolver.ResolveRows(extracted.Rows, resolver.NewStoreResolver(chains, registry))

	rows := recon.Aggregate(resolved.Rows)
	totalBoxes := recon.TotalBoxes(rows)

	sourceTotal := extracted.ExcelTotal
	if sourceTotal == nil {
		sourceTotal = opts.ManualTotal
	}

	skipped := append(extracted.Skipped, resolved.Skipped...)
	warnings := append(extracted.Warnings, resolved.Warnings...)
	reconciliation := recon.Reconcile(totalBoxes, sourceTotal, skipped)

	existing, err := c.store.ExistingFactKeys(extracted.AllDates)
	if err != nil {
		return nil, 0, err
	}
	dupes := recon.MarkDuplicates(rows, existing)

	return &model.ParseResult{
		Rows:           rows,
		Date:           extracted.Date,
		AllDates:       extracted.AllDates,
		DetectedFormat: format,
		StoreCount:     recon.StoreCount(rows),
		TotalBoxes:     totalBoxes,
		ExcelTotal:     extracted.ExcelTotal,
		Recon:          reconciliation,
		Warnings:       warnings,
		SkippedRows:    skipped,
	}, dupes, nil
}

// Confirm resumes a previewed session into the save phase. Acknowledge must
// be set when the reconciliation is unexplained. Once saving begins, batches
// already issued are durable; re-running a failed save is safe because the
// batches are idempotent upserts.
func (c *Coordinator) Confirm(sessionID string, acknowledge bool) (*SaveReport, error) {
	session, ok := c.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("unknown upload session %q", sessionID)
	}

	// Held across the whole save so a poll never observes the row rewrites
	// mid-flight and a double confirm cannot double-save.
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.State != StatePreview {
		return nil, fmt.Errorf("upload session %q is %s, not awaiting confirmation", sessionID, session.State)
	}
	if session.Result.Recon.Status == model.ReconUnexplained && !acknowledge {
		return nil, ErrAcknowledgeRequired
	}

	session.State = StateSaving
	report, err := c.save(session)
	if err != nil {
		session.State = StateError
		session.Error = err.Error()
		c.log.Error("save failed", "session", sessionID, "err", err)
		return report, err
	}
	session.State = StateDone
	c.log.Info("save complete", "session", sessionID, "rows", report.RowsSaved, "batches", report.BatchesSent)
	return report, nil
}

func (c *Coordinator) save(session *Session) (*SaveReport, error) {
	result := session.Result
	report := &SaveReport{
		TotalQuantity: result.TotalBoxes,
		StoreCount:    result.StoreCount,
	}

	newStores, err := c.materializeNewStores(result.Rows)
	if err != nil {
		return report, err
	}
	report.NewStores = newStores

	if err := checkIdentifiers(result.Rows); err != nil {
		return report, err
	}

	facts := make([]model.DailySalesFact, len(result.Rows))
	for i, row := range result.Rows {
		facts[i] = model.DailySalesFact{
			Date:      row.Date,
			StoreID:   row.StoreID,
			ProductID: row.ProductID,
			Quantity:  row.Quantity,
		}
	}

	for i := 0; i < len(facts); i += c.batchSize {
		end := i + c.batchSize
		if end > len(facts) {
			end = len(facts)
		}
		batch := i / c.batchSize
		if err := c.store.UpsertDailySales(facts[i:end]); err != nil {
			report.FailedBatch = &batch
			return report, fmt.Errorf("batch %d failed, remaining batches aborted: %w", batch, err)
		}
		report.BatchesSent++
	}
	report.RowsSaved = len(facts)
	report.ExpectedCount = len(facts)

	// Verification: recount for the exact dates/stores touched. A shortfall
	// is a warning, not a fatal error.
	verified, err := c.store.CountFacts(result.AllDates, distinctStoreIDs(result.Rows))
	if err != nil {
		report.Warnings = append(report.Warnings, "verification query failed: "+err.Error())
	} else {
		report.VerifiedCount = verified
		if verified < len(facts) {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("verification found %d facts, expected at least %d", verified, len(facts)))
		}
	}

	auditID, err := c.store.AppendUploadLog(store.UploadLog{
		Filename:       session.Filename,
		DetectedFormat: result.DetectedFormat,
		DateFrom:       result.AllDates[0],
		DateTo:         result.AllDates[len(result.AllDates)-1],
		RowsSaved:      len(facts),
		TotalQuantity:  result.TotalBoxes,
		StoreCount:     result.StoreCount,
		Operator:       session.Operator,
	})
	if err != nil {
		report.Warnings = append(report.Warnings, "audit log write failed: "+err.Error())
	}
	report.AuditID = auditID

	return report, nil
}

// materializeNewStores creates registry records for every distinct temp
// store ID, then rewrites the rows onto the real IDs. The parent chain comes
// from an explicit chain prefix on the raw name, else a majority vote among
// resolved sibling rows; when neither decides, the whole save fails rather
// than guessing.
func (c *Coordinator) materializeNewStores(rows []*model.RawSaleRow) ([]model.CanonicalStore, error) {
	byTemp := make(map[string][]*model.RawSaleRow)
	var order []string
	for _, row := range rows {
		if !strings.HasPrefix(row.StoreID, resolver.TempIDPrefix) {
			continue
		}
		if _, ok := byTemp[row.StoreID]; !ok {
			order = append(order, row.StoreID)
		}
		byTemp[row.StoreID] = append(byTemp[row.StoreID], row)
	}
	if len(byTemp) == 0 {
		return nil, nil
	}
	sort.Strings(order)

	chains, err := c.store.ListChains()
	if err != nil {
		return nil, err
	}

	var created []model.CanonicalStore
	for _, tempID := range order {
		group := byTemp[tempID]
		sample := group[0]

		chainID, ok := chainByPrefix(chains, sample.RawStoreName)
		if !ok {
			chainID, ok = majorityChain(rows)
		}
		if !ok {
			return nil, fmt.Errorf("cannot determine parent chain for new store %q; save aborted", sample.RawStoreName)
		}

		slug := strings.TrimPrefix(tempID, resolver.TempIDPrefix)
		slug = slug[strings.Index(slug, ":")+1:]
		st := model.CanonicalStore{
			ID:       chainID + "-" + slug,
			Name:     strings.TrimSpace(sample.RawStoreName),
			ChainID:  chainID,
			SubChain: sample.SubChain,
		}
		if _, err := c.store.CreateStore(st); err != nil {
			return created, err
		}
		created = append(created, st)
		c.log.Info("created store", "id", st.ID, "name", st.Name, "chain", st.ChainID)

		for _, row := range group {
			row.StoreID = st.ID
		}
	}
	return created, nil
}

// chainByPrefix detects an explicit chain name token at the front of a raw
// store name.
func chainByPrefix(chains []model.Chain, rawName string) (string, bool) {
	ls := strings.ToLower(strings.TrimSpace(rawName))
	for _, ch := range chains {
		token := strings.ToLower(ch.Name)
		if strings.HasPrefix(ls, token+" ") || ls == token {
			return ch.ID, true
		}
	}
	return "", false
}

// majorityChain votes among already-resolved rows of the same upload.
func majorityChain(rows []*model.RawSaleRow) (string, bool) {
	counts := make(map[string]int)
	for _, row := range rows {
		if strings.HasPrefix(row.StoreID, resolver.TempIDPrefix) {
			continue
		}
		counts[row.ChainID]++
	}
	best, bestCount := "", 0
	for chain, n := range counts {
		if n > bestCount || (n == bestCount && chain < best) {
			best, bestCount = chain, n
		}
	}
	return best, bestCount > 0
}

var (
	idRe   = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// checkIdentifiers is the data-integrity guard before merge: any malformed
// key aborts the entire save. Hard stop, not a warning.
func checkIdentifiers(rows []*model.RawSaleRow) error {
	for _, row := range rows {
		if !idRe.MatchString(row.StoreID) {
			return fmt.Errorf("malformed store identifier %q; save aborted", row.StoreID)
		}
		if !idRe.MatchString(row.ProductID) {
			return fmt.Errorf("malformed product identifier %q; save aborted", row.ProductID)
		}
		if !dateRe.MatchString(row.Date) {
			return fmt.Errorf("malformed date %q; save aborted", row.Date)
		}
	}
	return nil
}

func distinctStoreIDs(rows []*model.RawSaleRow) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, row := range rows {
		if _, ok := seen[row.StoreID]; ok {
			continue
		}
		seen[row.StoreID] = struct{}{}
		out = append(out, row.StoreID)
	}
	sort.Strings(out)
	return out
}
