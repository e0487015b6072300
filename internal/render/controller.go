package render

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/solimanzein/storefront-bot/internal/actions"
	"github.com/solimanzein/storefront-bot/internal/cart"
	"github.com/solimanzein/storefront-bot/internal/catalog"
	"github.com/solimanzein/storefront-bot/pkg/enums"
	pkgerrors "github.com/solimanzein/storefront-bot/pkg/errors"
	"github.com/solimanzein/storefront-bot/pkg/logger"
	"github.com/solimanzein/storefront-bot/pkg/money"
)

// Sink delivers display payloads to the messaging platform.
type Sink interface {
	Send(ctx context.Context, channelID string, payload Payload) (string, error)
	Edit(ctx context.Context, ref cart.DisplayRef, payload Payload) error
	Delete(ctx context.Context, ref cart.DisplayRef) error
}

// ControllerParams groups dependencies for the render controller.
type ControllerParams struct {
	Logger           *logger.Logger
	Store            *cart.Store
	Sink             Sink
	AutoCloseOnEmpty bool
	PageSize         int
	MaxSelect        int
}

// Controller projects carts and prompts into display payloads and
// keeps at most one live cart display per user.
type Controller struct {
	logg             *logger.Logger
	store            *cart.Store
	sink             Sink
	autoCloseOnEmpty bool
	pageSize         int
	maxSelect        int
}

// NewController builds a render controller.
func NewController(params ControllerParams) (*Controller, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if params.Sink == nil {
		return nil, fmt.Errorf("display sink required")
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 25
	}
	maxSelect := params.MaxSelect
	if maxSelect < 1 {
		maxSelect = 10
	}
	if maxSelect > pageSize {
		maxSelect = pageSize
	}
	return &Controller{
		logg:             params.Logger,
		store:            params.Store,
		sink:             params.Sink,
		autoCloseOnEmpty: params.AutoCloseOnEmpty,
		pageSize:         pageSize,
		maxSelect:        maxSelect,
	}, nil
}

// RenderCart synchronizes the user's single live cart display with
// cart state: edit when a display exists, send otherwise. An empty or
// absent cart closes the display when auto-close is on.
func (c *Controller) RenderCart(ctx context.Context, userID, channelID string) error {
	snap, ok := c.store.Snapshot(userID)
	if !ok || snap.IsEmpty() {
		if c.autoCloseOnEmpty {
			return c.CloseCart(ctx, userID)
		}
		return nil
	}

	payload := c.buildCartPayload(snap)

	if !snap.Display.IsZero() {
		if err := c.sink.Edit(ctx, snap.Display, payload); err == nil {
			return nil
		}
		// The display may have been deleted out from under us;
		// degrade to sending a fresh one.
		c.logg.Warn(c.logg.WithUserID(ctx, userID), "cart display edit failed, sending new display")
	}

	messageID, err := c.sink.Send(ctx, channelID, payload)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send cart display")
	}
	c.store.SetDisplay(userID, cart.DisplayRef{ChannelID: channelID, MessageID: messageID})
	return nil
}

// CloseCart deletes the user's live cart display, if any, and clears
// the handle. The cart lines are untouched.
func (c *Controller) CloseCart(ctx context.Context, userID string) error {
	snap, ok := c.store.Snapshot(userID)
	if !ok || snap.Display.IsZero() {
		return nil
	}
	c.store.ClearDisplay(userID)
	if err := c.sink.Delete(ctx, snap.Display); err != nil {
		// Already gone is fine; the handle is cleared either way.
		c.logg.Warn(c.logg.WithUserID(ctx, userID), "cart display delete failed")
	}
	return nil
}

// RenderCatalogPrompt sends the selectable catalog for a category,
// chunked to the platform's per-prompt option limit.
func (c *Controller) RenderCatalogPrompt(ctx context.Context, channelID, category string, items []catalog.Item) error {
	if len(items) == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category has no items")
	}

	for start := 0; start < len(items); start += c.pageSize {
		end := start + c.pageSize
		if end > len(items) {
			end = len(items)
		}
		page := items[start:end]

		options := make([]SelectOption, 0, len(page))
		for _, item := range page {
			options = append(options, SelectOption{
				Label:       item.Name,
				Value:       item.Name,
				Description: money.FormatUSD(item.UnitPrice),
			})
		}
		maxValues := c.maxSelect
		if maxValues > len(options) {
			maxValues = len(options)
		}

		payload := Payload{
			Embeds: []Embed{{
				Title:       "🛒 Store",
				Description: "Select the items you want to add to your cart.",
			}},
			Rows: []Row{{
				Select: &SelectMenu{
					ActionID:    actions.CatalogSelectID(category),
					Placeholder: "Select items",
					MaxValues:   maxValues,
					Options:     options,
				},
			}},
		}
		if _, err := c.sink.Send(ctx, channelID, payload); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send catalog prompt")
		}
	}
	return nil
}

// RenderPaymentPrompt sends the one-shot payment-method selection for
// a snapshotted total and returns its reference for later cleanup.
func (c *Controller) RenderPaymentPrompt(ctx context.Context, channelID string, total decimal.Decimal) (cart.DisplayRef, error) {
	methods := enums.PaymentMethods()
	options := make([]SelectOption, 0, len(methods))
	for _, method := range methods {
		options = append(options, SelectOption{
			Label: method.Label(),
			Value: method.String(),
		})
	}

	payload := Payload{
		Embeds: []Embed{{
			Title: "Select Payment Method",
			Description: fmt.Sprintf(
				"Please select a payment method below to complete your purchase.\nTotal: %s",
				money.FormatUSD(total),
			),
		}},
		Rows: []Row{{
			Select: &SelectMenu{
				ActionID:    actions.PaymentSelectID(),
				Placeholder: "Select payment method",
				MaxValues:   1,
				Options:     options,
			},
		}},
	}

	messageID, err := c.sink.Send(ctx, channelID, payload)
	if err != nil {
		return cart.DisplayRef{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send payment prompt")
	}
	return cart.DisplayRef{ChannelID: channelID, MessageID: messageID}, nil
}

// SendInstructions emits a final instructions message. It is never
// edited afterwards.
func (c *Controller) SendInstructions(ctx context.Context, channelID, title, body string) error {
	payload := Payload{Embeds: []Embed{{Title: title, Description: body}}}
	if _, err := c.sink.Send(ctx, channelID, payload); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send instructions")
	}
	return nil
}

// DeleteMessage removes an arbitrary tracked message (e.g. an
// abandoned payment prompt).
func (c *Controller) DeleteMessage(ctx context.Context, ref cart.DisplayRef) error {
	if ref.IsZero() {
		return nil
	}
	return c.sink.Delete(ctx, ref)
}

func (c *Controller) buildCartPayload(snap cart.Snapshot) Payload {
	payload := Payload{}

	payload.Embeds = append(payload.Embeds, Embed{Title: "__🛒 Your Cart__"})

	for _, line := range snap.Lines {
		payload.Embeds = append(payload.Embeds, Embed{
			Description: money.FormatUSD(line.Total()),
			Fields: []Field{
				{Name: line.Name, Value: "​", Inline: true},
				{Name: "​", Value: fmt.Sprintf("%d×", line.Quantity), Inline: true},
			},
		})
		payload.Rows = append(payload.Rows, Row{Buttons: []Button{
			{ActionID: actions.IncrementID(line.Name), Label: "+", Style: ButtonSecondary},
			{ActionID: actions.DecrementID(line.Name), Label: "-", Style: ButtonSecondary},
			{ActionID: actions.RemoveID(line.Name), Label: "Remove", Style: ButtonDanger},
		}})
	}

	payload.Embeds = append(payload.Embeds, Embed{
		Title:       "🛒 Cart Total",
		Description: money.FormatUSD(snap.Total),
	})
	payload.Rows = append(payload.Rows, Row{Buttons: []Button{
		{ActionID: actions.CheckoutID(), Label: "🛒 Purchase", Style: ButtonSuccess},
	}})

	return payload
}
