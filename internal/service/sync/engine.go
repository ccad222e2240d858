package sync

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/altenburg/minierp/internal/docsink"
	"github.com/altenburg/minierp/internal/domain/models"
	"github.com/altenburg/minierp/internal/errslot"
	"github.com/altenburg/minierp/internal/session"
	"github.com/altenburg/minierp/pkg/clients/erp"
)

// Localized messages surfaced through the error slot. Callers only ever
// see these strings, never machine-readable codes.
const (
	MsgInvalidLogin = "Invalid username or password"
	MsgServerError  = "Server error"
	MsgCreateFailed = "Failed to add product"
	MsgUpdateFailed = "Failed to update product"
)

// ErrNotConfirmed is returned when Remove is called without a granted
// confirmation; no request reaches the wire in that case.
var ErrNotConfirmed = errors.New("delete not confirmed")

// ConfirmFunc asks the environment whether the product with the given id
// may really be deleted.
type ConfirmFunc func(id int64) bool

// Engine owns the locally displayed product list. It never merges server
// responses into existing state: every successful read replaces the view
// wholesale, and every mutation reconciles by a full re-fetch.
type Engine struct {
	client      erp.Client
	session     *session.Manager
	slot        *errslot.Slot
	sink        docsink.Sink
	confirm     ConfirmFunc
	invoiceName string
	logger      *zap.Logger

	mu     sync.Mutex
	view   models.Inventory
	filter string
	gen    uint64
}

// NewEngine wires a sync engine for one session.
func NewEngine(client erp.Client, sess *session.Manager, slot *errslot.Slot, sink docsink.Sink, invoiceName string, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		client:      client,
		session:     sess,
		slot:        slot,
		sink:        sink,
		invoiceName: invoiceName,
		logger:      logger,
	}
}

// SetConfirmFunc installs the external delete confirmation signal.
func (e *Engine) SetConfirmFunc(fn ConfirmFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.confirm = fn
}

// Refresh issues a read scoped by filter (empty means unfiltered) and
// replaces the view with the result. Refreshes are stamped with a
// monotonic generation; a response is applied only while its generation is
// still the latest, so a slow early read can never overwrite a newer one.
func (e *Engine) Refresh(ctx context.Context, filter string) error {
	header, err := e.session.AuthHeader()
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.gen++
	gen := e.gen
	e.filter = filter
	e.mu.Unlock()

	var products []models.Product
	if filter == "" {
		products, err = e.client.List(ctx, header)
	} else {
		products, err = e.client.Search(ctx, header, filter)
	}
	if err != nil {
		return e.failRead(err, gen)
	}

	// A resolved successful read proves the credentials, even when the
	// payload itself is already superseded.
	e.session.Confirm()

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		e.logger.Debug("discarding superseded refresh response",
			zap.Uint64("generation", gen),
			zap.Uint64("latest", e.gen))
		return nil
	}

	e.view = products
	e.slot.Clear()
	return nil
}

// Create submits a new product. On success the caller may discard its
// draft buffer; the view is reconciled by a follow-up refresh with the
// current filter.
func (e *Engine) Create(ctx context.Context, input models.ProductInput) error {
	header, err := e.session.AuthHeader()
	if err != nil {
		return err
	}

	_, err = e.client.Create(ctx, header, input)
	if err != nil {
		var validationErr *erp.ValidationError
		switch {
		case errors.Is(err, erp.ErrAuthDenied):
			e.session.Reject()
			e.slot.Set(MsgInvalidLogin)
		case errors.As(err, &validationErr):
			e.slot.Set(validationErr.Error())
		default:
			e.slot.Set(MsgCreateFailed)
		}
		return err
	}

	if err := e.Refresh(ctx, e.Filter()); err != nil {
		e.logger.Warn("post-create refresh failed", zap.Error(err))
	}
	return nil
}

// Update submits a full replacement for the product with the given id.
// Field-level failure detail is not surfaced here; any non-auth failure
// collapses into one generic message.
func (e *Engine) Update(ctx context.Context, id int64, input models.ProductInput) error {
	header, err := e.session.AuthHeader()
	if err != nil {
		return err
	}

	_, err = e.client.Update(ctx, header, id, input)
	if err != nil {
		if errors.Is(err, erp.ErrAuthDenied) {
			e.session.Reject()
			e.slot.Set(MsgInvalidLogin)
		} else {
			e.slot.Set(MsgUpdateFailed)
		}
		return err
	}

	if err := e.Refresh(ctx, e.Filter()); err != nil {
		e.logger.Warn("post-update refresh failed", zap.Error(err))
	}
	return nil
}

// Remove deletes a product after the environment confirms it. The delete
// response itself is fire-and-forget: its outcome is logged but never
// surfaced, and the follow-up refresh runs either way.
func (e *Engine) Remove(ctx context.Context, id int64) error {
	e.mu.Lock()
	confirm := e.confirm
	e.mu.Unlock()

	if confirm == nil || !confirm(id) {
		return ErrNotConfirmed
	}

	header, err := e.session.AuthHeader()
	if err != nil {
		return err
	}

	if err := e.client.Delete(ctx, header, id); err != nil {
		e.logger.Warn("delete request failed, reconciling anyway",
			zap.Int64("product_id", id),
			zap.Error(err))
	}

	return e.Refresh(ctx, e.Filter())
}

// DownloadInvoice fetches the delivery-note document for the current
// inventory snapshot and hands it to the document sink under the
// configured file name.
func (e *Engine) DownloadInvoice(ctx context.Context) error {
	header, err := e.session.AuthHeader()
	if err != nil {
		return err
	}

	data, err := e.client.Invoice(ctx, header)
	if err != nil {
		if errors.Is(err, erp.ErrAuthDenied) {
			e.session.Reject()
			e.slot.Set(MsgInvalidLogin)
		}
		e.logger.Warn("invoice download failed", zap.Error(err))
		return err
	}

	if err := e.sink.Save(data, e.invoiceName); err != nil {
		return fmt.Errorf("hand invoice to sink: %w", err)
	}
	return nil
}

// Products returns a defensive copy of the current view.
func (e *Engine) Products() models.Inventory {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(models.Inventory, len(e.view))
	copy(out, e.view)
	return out
}

// Filter returns the filter of the most recently issued refresh.
func (e *Engine) Filter() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filter
}

// failRead maps a failed read into the error slot. The view is left
// untouched in every case: stale but consistent beats speculative.
// Failures are generation-checked like successes: a superseded read must
// not overwrite what a newer, already-resolved refresh established. The
// one exception is an auth denial, which proves the stored credentials
// bad no matter which refresh observed it.
func (e *Engine) failRead(err error, gen uint64) error {
	if errors.Is(err, erp.ErrAuthDenied) {
		e.session.Reject()
		e.slot.Set(MsgInvalidLogin)
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		e.logger.Debug("discarding superseded refresh failure",
			zap.Uint64("generation", gen),
			zap.Uint64("latest", e.gen),
			zap.Error(err))
		return err
	}

	e.slot.Set(MsgServerError)
	return err
}
