// Package editor hosts the variant engine and the validation engine for one
// item: attribute changes regenerate and reconcile every facet's records,
// field edits are validated incrementally, and submission validates the
// whole document.
package editor

import (
	"context"
	"sync"

	"github.com/Gobusters/ectolinq"
	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/bramble/pkg/combinations"
	"github.com/Ramsey-B/bramble/pkg/errors"
	"github.com/Ramsey-B/bramble/pkg/logging"
	"github.com/Ramsey-B/bramble/pkg/metrics"
	"github.com/Ramsey-B/bramble/pkg/models"
	"github.com/Ramsey-B/bramble/pkg/paths"
	"github.com/Ramsey-B/bramble/pkg/schema"
	"github.com/Ramsey-B/bramble/pkg/tracing"
	"github.com/Ramsey-B/bramble/pkg/variants"
)

type Options struct {
	Logger  ectologger.Logger
	Metrics *metrics.Metrics
	// MaxCombinations bounds the combinations generated per facet. Zero
	// disables the bound.
	MaxCombinations int
	Schema          schema.Options
}

// FacetSummary describes the outcome of reconciling one facet.
type FacetSummary struct {
	Single       bool `json:"single"`
	Combinations int  `json:"combinations"`
	Exact        int  `json:"exact"`
	Partial      int  `json:"partial"`
	None         int  `json:"none"`
	// Dropped counts prior records that no combination took its fields from.
	Dropped int `json:"dropped"`
}

func (s *FacetSummary) count(match variants.Match) {
	switch match {
	case variants.MatchExact:
		s.Exact++
	case variants.MatchPartial:
		s.Partial++
	default:
		s.None++
	}
}

type Summary map[models.Facet]FacetSummary

type Editor struct {
	mu              sync.Mutex
	logger          ectologger.Logger
	metrics         *metrics.Metrics
	maxCombinations int
	schemaOpts      schema.Options
	attributes      models.Attributes
	summary         Summary
	form            *schema.Form
}

// New opens an editor over draft and reconciles its facet records against
// its attributes.
func New(ctx context.Context, draft Draft, opts Options) (*Editor, error) {
	doc, err := Document(draft)
	if err != nil {
		return nil, err
	}

	sch, err := BuildSchema(draft.Attributes.Sorted(), opts.Schema)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	e := &Editor{
		logger:          logger,
		metrics:         opts.Metrics,
		maxCombinations: opts.MaxCombinations,
		schemaOpts:      opts.Schema,
		form:            schema.NewForm(sch, doc),
	}

	if _, err := e.ApplyAttributes(ctx, draft.Attributes); err != nil {
		return nil, err
	}
	return e, nil
}

// ApplyAttributes replaces the item's attributes. Attributes and values
// entered without an id get one. Every facet's combinations are regenerated
// from the attributes that control it and paired with the facet's current
// records; the reconciled rows become the new records and the schema is
// rebuilt to match.
func (e *Editor) ApplyAttributes(ctx context.Context, attrs models.Attributes) (Summary, error) {
	ctx, span := tracing.StartSpan(ctx, "editor.ApplyAttributes")
	defer span.End()

	log := e.log(ctx).WithFields(map[string]any{
		"attributes": len(attrs),
	})

	attrs = attrs.WithIDs()
	if err := attrs.Validate(); err != nil {
		tracing.RecordError(span, err)
		log.WithError(err).Warn("Rejected attribute catalog")
		return nil, err
	}
	sorted := attrs.Sorted()

	e.mu.Lock()
	defer e.mu.Unlock()

	doc := e.form.Data()
	summary := Summary{}

	for _, facet := range models.Facets {
		state, facetSummary, err := e.reconcileFacet(ctx, facet, sorted, recordsOf(doc, facet))
		if err != nil {
			tracing.RecordError(span, err)
			log.WithError(err).Warnf("Failed to reconcile %s", facet)
			return nil, err
		}
		doc[string(facet)] = state
		summary[facet] = facetSummary
	}

	attributesDoc, err := toValue(sorted)
	if err != nil {
		return nil, errors.WrapCatalogError(err)
	}
	doc[AttributesField] = attributesDoc

	sch, err := BuildSchema(sorted, e.schemaOpts)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	e.form.Replace(sch, doc)
	e.attributes = sorted
	e.summary = summary

	log.WithFields(map[string]any{
		"controlling": ectolinq.Filter(models.Facets, func(f models.Facet) bool {
			return !summary[f].Single
		}),
	}).Debug("Applied attributes")

	return summary, nil
}

func (e *Editor) reconcileFacet(ctx context.Context, facet models.Facet, attrs models.Attributes, records []record) (map[string]any, FacetSummary, error) {
	ctx, span := tracing.StartSpan(ctx, "editor.reconcileFacet")
	defer span.End()

	controlling := attrs.Controlling(facet)

	if len(controlling) == 0 {
		fields := defaultPayload(facet)
		match := variants.MatchNone
		if prior, ok := variants.ResolveSingle(records); ok {
			fields = prior.Fields
			match = variants.MatchExact
		}
		e.metrics.ObserveResolution(string(facet), string(match))

		summary := FacetSummary{Single: true, Combinations: 1}
		summary.count(match)
		summary.Dropped = e.logDropped(ctx, facet, attrs, ectolinq.Filter(records, func(r record) bool {
			return r.Key != models.SingleKey
		}))

		single := models.Combination{Key: models.SingleKey, AttributeValues: map[string]string{}}
		return map[string]any{SingleField: rowDocument(single, fields)}, summary, nil
	}

	combos, err := combinations.GenerateBounded(controlling, e.maxCombinations)
	if err != nil {
		return nil, FacetSummary{}, errors.WrapCatalogError(err).AddFacet(string(facet))
	}
	e.metrics.ObserveCombinations(string(facet), len(combos))

	rows := variants.Reconcile(combos, records, func(models.Combination) payload {
		return defaultPayload(facet)
	})

	summary := FacetSummary{Combinations: len(rows)}
	summary.Dropped = e.logDropped(ctx, facet, attrs, variants.Unmatched(rows, records))

	list := make([]any, len(rows))
	for i, row := range rows {
		list[i] = rowDocument(row.Combination, row.Fields)
		summary.count(row.Match)
		e.metrics.ObserveResolution(string(facet), string(row.Match))
	}

	return map[string]any{VariantsField: list}, summary, nil
}

// logDropped reports prior records that did not survive reconciliation and
// returns how many there were.
func (e *Editor) logDropped(ctx context.Context, facet models.Facet, attrs models.Attributes, dropped []record) int {
	if len(dropped) == 0 {
		return 0
	}

	labels := make([]string, len(dropped))
	for i, r := range dropped {
		labels[i] = attrs.Describe(r.AttributeValues)
	}

	e.log(ctx).WithFields(map[string]any{
		"facet":   facet,
		"records": labels,
	}).Infof("Dropped %d %s records", len(dropped), facet)
	return len(dropped)
}

func (e *Editor) log(ctx context.Context) ectologger.Logger {
	return e.logger.WithContext(ctx).WithFields(map[string]any{
		"trace_id": tracing.GetTraceID(ctx),
		"span_id":  tracing.GetSpanID(ctx),
	})
}

// SetField writes a value into the document and re-validates the path and
// its declared children. Attributes can only change through ApplyAttributes.
func (e *Editor) SetField(ctx context.Context, path string, value any) (*schema.FieldError, error) {
	p := paths.Parse(path)
	if len(p) > 0 && p[0].Name == AttributesField {
		return nil, errors.NewCatalogError("attributes must be changed with ApplyAttributes").AddPath(path)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	fe, err := e.form.SetField(path, value)
	if err != nil {
		e.log(ctx).WithError(err).Warnf("Rejected change to %s", path)
		return nil, err
	}

	failing := 0
	if fe != nil {
		failing = 1
	}
	e.metrics.ObserveValidation(metrics.KindChange, failing)

	return fe, nil
}

// ValidateField checks a candidate value without storing it.
func (e *Editor) ValidateField(path string, value any) *schema.FieldError {
	fe := e.form.ValidateField(path, value)

	failing := 0
	if fe != nil {
		failing = 1
	}
	e.metrics.ObserveValidation(metrics.KindField, failing)

	return fe
}

// Submit validates the whole document. From now on, every field change also
// checks required.
func (e *Editor) Submit(ctx context.Context) schema.Result {
	ctx, span := tracing.StartSpan(ctx, "editor.Submit")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	result := e.form.Submit()
	e.metrics.ObserveValidation(metrics.KindForm, len(result.Errors))

	e.log(ctx).WithFields(map[string]any{
		"valid":       result.Valid,
		"errors":      len(result.Errors),
		"first_error": result.FirstError,
	}).Info("Submitted item")

	return result
}

// Document returns a copy of the current document.
func (e *Editor) Document() map[string]any {
	return e.form.Data()
}

func (e *Editor) Errors() schema.Errors {
	return e.form.Errors()
}

func (e *Editor) FirstError() string {
	return e.form.FirstError()
}

func (e *Editor) Schema() *schema.Schema {
	return e.form.Schema()
}

// Summary returns the outcome of the last attribute change.
func (e *Editor) Summary() Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.summary
}

// Attributes returns the current attributes in display order.
func (e *Editor) Attributes() models.Attributes {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.attributes
}
