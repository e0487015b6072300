package router

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/solimanzein/storefront-bot/internal/actions"
	"github.com/solimanzein/storefront-bot/internal/cart"
	"github.com/solimanzein/storefront-bot/internal/catalog"
	"github.com/solimanzein/storefront-bot/internal/checkout"
	"github.com/solimanzein/storefront-bot/internal/payments"
	"github.com/solimanzein/storefront-bot/pkg/enums"
	pkgerrors "github.com/solimanzein/storefront-bot/pkg/errors"
	"github.com/solimanzein/storefront-bot/pkg/logger"
	"github.com/solimanzein/storefront-bot/pkg/metrics"
)

// Event is one inbound component interaction, already stripped of
// platform detail.
type Event struct {
	UserID    string
	ChannelID string
	ActionID  string
	Values    []string
}

// Acknowledger settles an interaction with the platform. Every event
// must be settled exactly once, via Ack (silent) or Notify (ephemeral
// notice), even when nothing changed.
type Acknowledger interface {
	Ack(ctx context.Context) error
	Notify(ctx context.Context, message string) error
}

// Renderer is the slice of the render controller the router drives.
type Renderer interface {
	RenderCart(ctx context.Context, userID, channelID string) error
	CloseCart(ctx context.Context, userID string) error
	RenderCatalogPrompt(ctx context.Context, channelID, category string, items []catalog.Item) error
	RenderPaymentPrompt(ctx context.Context, channelID string, total decimal.Decimal) (cart.DisplayRef, error)
	SendInstructions(ctx context.Context, channelID, title, body string) error
	DeleteMessage(ctx context.Context, ref cart.DisplayRef) error
}

// InstructionFormatter renders payment instructions for a chosen
// method and snapshotted total.
type InstructionFormatter interface {
	Format(method enums.PaymentMethod, total decimal.Decimal) (payments.Instructions, error)
}

const noticeEmptyCart = "Your cart is empty."

// Params groups dependencies for the interaction router.
type Params struct {
	Logger   *logger.Logger
	Store    *cart.Store
	Sessions *checkout.Sessions
	Catalog  catalog.Provider
	Renderer Renderer
	Payments InstructionFormatter
	Metrics  *metrics.InteractionMetrics
}

// Router dispatches inbound interactions through the
// browsing → cart open → awaiting payment state machine. Failures are
// absorbed here; nothing escapes to crash event processing.
type Router struct {
	logg     *logger.Logger
	store    *cart.Store
	sessions *checkout.Sessions
	catalog  catalog.Provider
	renderer Renderer
	payments InstructionFormatter
	metrics  *metrics.InteractionMetrics
}

// NewRouter builds an interaction router.
func NewRouter(params Params) (*Router, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if params.Sessions == nil {
		return nil, fmt.Errorf("checkout sessions required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog provider required")
	}
	if params.Renderer == nil {
		return nil, fmt.Errorf("renderer required")
	}
	if params.Payments == nil {
		return nil, fmt.Errorf("instruction formatter required")
	}
	return &Router{
		logg:     params.Logger,
		store:    params.Store,
		sessions: params.Sessions,
		catalog:  params.Catalog,
		renderer: params.Renderer,
		payments: params.Payments,
		metrics:  params.Metrics,
	}, nil
}

// StateFor derives the user's position in the flow. The state is not
// stored anywhere; it follows from which records exist.
func (r *Router) StateFor(userID string) enums.SessionState {
	if _, ok := r.sessions.Get(userID); ok {
		return enums.SessionStateAwaitingPayment
	}
	if !r.store.IsEmpty(userID) {
		return enums.SessionStateCartOpen
	}
	return enums.SessionStateBrowsing
}

// OpenCatalog presents the selectable catalog for a category. Called
// by the trigger listener when a configured mention arrives.
func (r *Router) OpenCatalog(ctx context.Context, channelID, category string) error {
	items, ok := r.catalog.Category(category)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("unknown catalog category %q", category))
	}
	return r.renderer.RenderCatalogPrompt(ctx, channelID, category, items)
}

// HandleInteraction processes one inbound interaction end to end. It
// never returns an error and never panics outward: one failing
// interaction must not take down processing of the next.
func (r *Router) HandleInteraction(ctx context.Context, ev Event, ack Acknowledger) {
	start := time.Now()
	kind := "unknown"

	ctx = r.logg.WithUserID(ctx, ev.UserID)
	ctx = r.logg.WithChannelID(ctx, ev.ChannelID)

	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("panic: %v", rec)
			r.logg.Error(r.logg.WithField(ctx, "panic", rec), "panic recovered handling interaction", err)
			r.metrics.IncHandled(kind, "error")
			r.notify(ctx, ack, pkgerrors.MetadataFor(pkgerrors.CodeInternal).UserMessage)
		}
		r.metrics.ObserveDuration(kind, time.Since(start))
	}()

	action, err := actions.Parse(ev.ActionID, ev.Values)
	if err != nil {
		r.logg.Warn(r.logg.WithField(ctx, "custom_id", ev.ActionID), "unparseable interaction")
		r.metrics.IncHandled(kind, "error")
		r.notify(ctx, ack, pkgerrors.MetadataFor(pkgerrors.CodeInternal).UserMessage)
		return
	}
	kind = action.Kind()
	ctx = r.logg.WithAction(ctx, kind)

	outcome := r.dispatch(ctx, ev, action, ack)
	r.metrics.IncHandled(kind, outcome)
}

func (r *Router) dispatch(ctx context.Context, ev Event, action actions.Action, ack Acknowledger) string {
	switch a := action.(type) {
	case actions.AddToCart:
		return r.handleAddToCart(ctx, ev, a, ack)
	case actions.Increment:
		return r.handleLineControl(ctx, ev, ack, func() { r.store.IncrementItem(ev.UserID, a.Item) })
	case actions.Decrement:
		return r.handleLineControl(ctx, ev, ack, func() { r.store.DecrementItem(ev.UserID, a.Item) })
	case actions.Remove:
		return r.handleLineControl(ctx, ev, ack, func() { r.store.RemoveItem(ev.UserID, a.Item) })
	case actions.Checkout:
		return r.handleCheckout(ctx, ev, ack)
	case actions.SelectPayment:
		return r.handleSelectPayment(ctx, ev, a, ack)
	}
	r.logg.Warn(ctx, "unhandled action variant")
	r.ack(ctx, ack)
	return "error"
}

func (r *Router) handleAddToCart(ctx context.Context, ev Event, a actions.AddToCart, ack Acknowledger) string {
	// A committed checkout freezes the cart until it resolves.
	if _, awaiting := r.sessions.Get(ev.UserID); awaiting {
		r.ack(ctx, ack)
		return "noop"
	}

	added := 0
	for _, name := range a.Items {
		item, ok := r.catalog.Lookup(a.Category, name)
		if !ok {
			r.logg.Warn(r.logg.WithField(ctx, "item", name), "selection named an unknown catalog item")
			continue
		}
		r.store.AddItem(ev.UserID, item.Name, item.UnitPrice)
		added++
	}

	r.ack(ctx, ack)
	if added == 0 {
		return "noop"
	}
	r.renderCart(ctx, ev)
	return "ok"
}

func (r *Router) handleLineControl(ctx context.Context, ev Event, ack Acknowledger, mutate func()) string {
	if _, awaiting := r.sessions.Get(ev.UserID); awaiting {
		r.ack(ctx, ack)
		return "noop"
	}
	if _, ok := r.store.Snapshot(ev.UserID); !ok {
		// Stale control for a cart that no longer exists.
		r.ack(ctx, ack)
		return "noop"
	}

	mutate()
	r.ack(ctx, ack)
	r.renderCart(ctx, ev)
	return "ok"
}

func (r *Router) handleCheckout(ctx context.Context, ev Event, ack Acknowledger) string {
	if _, awaiting := r.sessions.Get(ev.UserID); awaiting {
		// The payment prompt is already out.
		r.ack(ctx, ack)
		return "noop"
	}
	if r.store.IsEmpty(ev.UserID) {
		r.notify(ctx, ack, noticeEmptyCart)
		return "rejected"
	}

	total := r.store.Total(ev.UserID)
	r.sessions.Begin(ev.UserID, total)

	r.ack(ctx, ack)
	if err := r.renderer.CloseCart(ctx, ev.UserID); err != nil {
		r.logg.Warn(ctx, "failed closing cart display at checkout")
	}

	prompt, err := r.renderer.RenderPaymentPrompt(ctx, ev.ChannelID, total)
	if err != nil {
		// Roll the session back so the user can press checkout again.
		r.sessions.Delete(ev.UserID)
		r.logg.Error(ctx, "failed sending payment prompt", err)
		return "error"
	}
	r.sessions.SetPrompt(ev.UserID, prompt)
	return "ok"
}

func (r *Router) handleSelectPayment(ctx context.Context, ev Event, a actions.SelectPayment, ack Acknowledger) string {
	session, ok := r.sessions.Get(ev.UserID)
	if !ok {
		// Stale prompt; the session was completed or evicted.
		r.ack(ctx, ack)
		return "noop"
	}

	instructions, err := r.payments.Format(a.Method, session.Total)
	if err != nil {
		r.logg.Error(ctx, "failed formatting payment instructions", err)
		r.notify(ctx, ack, pkgerrors.UserMessageFor(err))
		return "error"
	}

	// Terminal transition: commit before any network round-trip so a
	// racing second selection observes the session gone.
	r.sessions.Delete(ev.UserID)
	r.store.Delete(ev.UserID)

	r.ack(ctx, ack)
	if err := r.renderer.SendInstructions(ctx, ev.ChannelID, instructions.Title, instructions.Body); err != nil {
		r.logg.Error(ctx, "failed sending payment instructions", err)
		return "error"
	}
	if err := r.renderer.DeleteMessage(ctx, session.Prompt); err != nil {
		r.logg.Warn(ctx, "failed deleting payment prompt")
	}
	return "ok"
}

func (r *Router) renderCart(ctx context.Context, ev Event) {
	if err := r.renderer.RenderCart(ctx, ev.UserID, ev.ChannelID); err != nil {
		// Display sink failures degrade silently; the user keeps the
		// previous display rather than seeing an error.
		r.logg.Error(ctx, "failed rendering cart display", err)
	}
}

func (r *Router) ack(ctx context.Context, ack Acknowledger) {
	if err := ack.Ack(ctx); err != nil {
		r.logg.Warn(ctx, "failed acknowledging interaction")
	}
}

func (r *Router) notify(ctx context.Context, ack Acknowledger, message string) {
	if err := ack.Notify(ctx, message); err != nil {
		r.logg.Warn(ctx, "failed notifying user")
	}
}
