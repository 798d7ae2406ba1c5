package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	backend "github.com/dwikikusuma/shoping-storefront/internal/backend/domain"
	"github.com/dwikikusuma/shoping-storefront/internal/backend/rest"
	"github.com/dwikikusuma/shoping-storefront/internal/checkout/domain"
	"github.com/dwikikusuma/shoping-storefront/internal/pricing"
)

const (
	telephonePlaceholder = "0000000000"
	streetNumberDefault  = "S/N"
	dateLayout           = "2006-01-02"
)

var tracer = otel.Tracer("github.com/dwikikusuma/shoping-storefront/internal/checkout")

type Service struct {
	Carts   CartReader
	Backend Backend

	Now  func() time.Time
	Rand func(n int) int
	// OnTransition, if set, sees every state change of every checkout.
	OnTransition func(sessionID string, t domain.Transition)

	taxRate       decimal.Decimal
	maxConcurrent int
	log           *slog.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewService(carts CartReader, b Backend, taxRate decimal.Decimal, maxConcurrent int, log *slog.Logger) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		Carts:         carts,
		Backend:       b,
		Now:           time.Now,
		Rand:          rand.IntN,
		taxRate:       taxRate,
		maxConcurrent: maxConcurrent,
		log:           log,
		inflight:      make(map[string]struct{}),
	}
}

// Quote prices the session's cart as it stands and reports the lines that
// would fail the stock check.
func (s *Service) Quote(ctx context.Context, sessionID string) (domain.Quote, error) {
	items := s.Carts.Cart(ctx, sessionID).Items()
	if len(items) == 0 {
		return domain.Quote{}, domain.ErrEmptyCart
	}

	lines := make([]domain.QuoteLine, len(items))
	for i, it := range items {
		lines[i] = domain.QuoteLine{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.UnitPrice.Mul(it.Quantity),
		}
	}

	problems, err := s.checkStock(ctx, items)
	if err != nil {
		return domain.Quote{}, err
	}

	return domain.Quote{
		Lines:    lines,
		Totals:   pricing.Compute(pricingLines(items), s.taxRate),
		Problems: problems,
	}, nil
}

// Checkout turns the session's cart into a bill, an order and its lines.
//
// The draft and a fresh stock check are validated first; a *ValidationError
// means nothing was created. After that the steps run in order and the first
// failure stops the checkout with a *StageError naming the step. Records made
// by earlier steps are not rolled back and nothing is retried. The cart is
// cleared only when every line has been created.
func (s *Service) Checkout(ctx context.Context, sessionID string, draft domain.Draft) (domain.Result, error) {
	now := s.Now()
	if err := draft.Validate(now); err != nil {
		return domain.Result{}, err
	}
	if draft.DeliveryMethod == 0 {
		draft.DeliveryMethod = backend.DeliveryHomeDelivery
	}

	if !s.begin(sessionID) {
		return domain.Result{}, domain.ErrCheckoutInProgress
	}
	defer s.end(sessionID)

	// a submitted checkout is not cancellable, it runs to success or failure
	ctx = context.WithoutCancel(ctx)
	ctx, span := tracer.Start(ctx, "checkout.Checkout")
	defer span.End()

	cart := s.Carts.Cart(ctx, sessionID)
	items := cart.Items()
	if len(items) == 0 {
		return domain.Result{}, domain.ErrEmptyCart
	}

	r := &run{
		svc:   s,
		draft: draft,
		items: items,
		now:   now,
		log:   s.log.With(slog.String("session_id", sessionID)),
	}
	r.machine = domain.NewMachine(func(t domain.Transition) {
		if s.OnTransition != nil {
			s.OnTransition(sessionID, t)
		}
	})

	res, err := r.execute(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.Result{}, err
	}

	cart.Clear(ctx)
	if err := r.machine.Advance(domain.StateSucceeded); err != nil {
		return domain.Result{}, err
	}

	span.SetAttributes(attribute.Int64("order_id", res.OrderID))
	r.log.Info("checkout completed",
		slog.Int64("order_id", res.OrderID),
		slog.String("bill_number", res.BillNumber),
		slog.Int("lines", len(res.LineIDs)),
		slog.String("total", res.Totals.GrandTotal.String()),
	)
	return res, nil
}

func (s *Service) begin(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[sessionID]; busy {
		return false
	}
	s.inflight[sessionID] = struct{}{}
	return true
}

func (s *Service) end(sessionID string) {
	s.mu.Lock()
	delete(s.inflight, sessionID)
	s.mu.Unlock()
}

// checkStock re-reads every product and reports lines asking for more than
// is in stock, or for products that no longer exist.
func (s *Service) checkStock(ctx context.Context, items []CartItem) ([]domain.Problem, error) {
	found := make([]*domain.Problem, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for i, it := range items {
		if it.Quantity < 1 {
			found[i] = &domain.Problem{
				Field:     "quantity",
				ProductID: it.ProductID,
				Message:   fmt.Sprintf("invalid quantity %d for %s", it.Quantity, it.Name),
			}
			continue
		}
		g.Go(func() error {
			p, err := s.Backend.GetProduct(gctx, it.ProductID)
			if errors.Is(err, rest.ErrNotFound) {
				found[i] = &domain.Problem{
					ProductID: it.ProductID,
					Message:   fmt.Sprintf("%s is no longer available", it.Name),
				}
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to get product %d: %w", it.ProductID, err)
			}

			if it.Quantity > p.Stock {
				found[i] = &domain.Problem{
					Field:     "quantity",
					ProductID: it.ProductID,
					Message:   fmt.Sprintf("insufficient stock for %s: %d requested, %d available", it.Name, it.Quantity, p.Stock),
				}
			}
			if !p.Price.Equal(it.UnitPrice) {
				s.log.Warn("price changed since the product was added to the cart",
					slog.Int64("product_id", it.ProductID),
					slog.String("cart_price", it.UnitPrice.String()),
					slog.String("current_price", p.Price.String()),
				)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var problems []domain.Problem
	for _, p := range found {
		if p != nil {
			problems = append(problems, *p)
		}
	}
	return problems, nil
}

func pricingLines(items []CartItem) []pricing.Line {
	out := make([]pricing.Line, len(items))
	for i, it := range items {
		out[i] = pricing.Line{UnitPrice: it.UnitPrice, Quantity: it.Quantity}
	}
	return out
}

// run is one checkout attempt.
type run struct {
	svc     *Service
	machine *domain.Machine
	draft   domain.Draft
	items   []CartItem
	now     time.Time
	log     *slog.Logger

	res domain.Result
}

func (r *run) execute(ctx context.Context) (domain.Result, error) {
	r.res.Totals = pricing.Compute(pricingLines(r.items), r.svc.taxRate)

	steps := []struct {
		state domain.State
		fn    func(context.Context) error
	}{
		{domain.StateValidatingStock, r.validateStock},
		{domain.StateCreatingClient, r.resolveClient},
		{domain.StateCreatingAddress, r.resolveAddress},
		{domain.StateCreatingBill, r.createBill},
		{domain.StateCreatingOrder, r.createOrder},
		{domain.StateCreatingLines, r.createLines},
	}
	for _, st := range steps {
		if err := r.step(ctx, st.state, st.fn); err != nil {
			return domain.Result{}, err
		}
	}
	return r.res, nil
}

func (r *run) step(ctx context.Context, state domain.State, fn func(context.Context) error) error {
	if err := r.machine.Advance(state); err != nil {
		return err
	}
	stage := state.Stage()

	ctx, span := tracer.Start(ctx, "checkout."+string(stage))
	defer span.End()

	err := fn(ctx)
	if err == nil {
		return nil
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	if _, ferr := r.machine.Fail(); ferr != nil {
		return ferr
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		r.log.Warn("checkout refused",
			slog.String("stage", string(stage)),
			slog.Int("problems", len(verr.Problems)),
		)
		return err
	}

	r.log.Error("checkout failed",
		slog.String("stage", string(stage)),
		slog.Any("err", err),
		slog.Int64("client_id", r.res.ClientID),
		slog.Int64("address_id", r.res.AddressID),
		slog.Int64("bill_id", r.res.BillID),
		slog.Int64("order_id", r.res.OrderID),
	)
	return &domain.StageError{Stage: stage, Message: stageMessage(stage, err), Err: err}
}

func (r *run) validateStock(ctx context.Context) error {
	problems, err := r.svc.checkStock(ctx, r.items)
	if err != nil {
		return err
	}
	if len(problems) > 0 {
		return &domain.ValidationError{Problems: problems}
	}
	return nil
}

func (r *run) resolveClient(ctx context.Context) error {
	if r.draft.ClientID > 0 {
		c, err := r.svc.Backend.GetClient(ctx, r.draft.ClientID)
		if err != nil {
			return err
		}
		r.res.ClientID = c.ID
		return nil
	}

	nc := r.draft.Client
	telephone := strings.TrimSpace(nc.Telephone)
	if telephone == "" {
		telephone = telephonePlaceholder
	}
	c, err := r.svc.Backend.CreateClient(ctx, backend.ClientInput{
		Name:      strings.TrimSpace(nc.Name),
		Lastname:  strings.TrimSpace(nc.Lastname),
		Email:     strings.TrimSpace(nc.Email),
		Telephone: telephone,
	})
	if err != nil {
		return err
	}
	if c.ID <= 0 {
		return userError("the backend did not return a client id")
	}
	r.res.ClientID = c.ID
	return nil
}

func (r *run) resolveAddress(ctx context.Context) error {
	if r.draft.AddressID > 0 {
		a, err := r.svc.Backend.GetAddress(ctx, r.draft.AddressID)
		if err != nil {
			return err
		}
		if a.ClientID != r.res.ClientID {
			return userError(fmt.Sprintf("address %d does not belong to client %d", a.ID, r.res.ClientID))
		}
		r.res.AddressID = a.ID
		return nil
	}

	na := r.draft.Address
	number := strings.TrimSpace(na.Number)
	if number == "" {
		number = streetNumberDefault
	}
	a, err := r.svc.Backend.CreateAddress(ctx, backend.AddressInput{
		Street:   strings.TrimSpace(na.Street),
		Number:   number,
		City:     strings.TrimSpace(na.City),
		ClientID: r.res.ClientID,
	})
	if err != nil {
		return err
	}
	if a.ID <= 0 {
		return userError("the backend did not return an address id")
	}
	r.res.AddressID = a.ID
	return nil
}

func (r *run) createBill(ctx context.Context) error {
	number := fmt.Sprintf("FAC-%d-%d", r.now.UnixMilli(), r.svc.Rand(1000))
	b, err := r.svc.Backend.CreateBill(ctx, backend.BillInput{
		BillNumber:  number,
		Date:        r.now.Format(dateLayout),
		Total:       r.res.Totals.GrandTotal,
		PaymentType: r.draft.PaymentType,
		ClientID:    r.res.ClientID,
	})
	if err != nil {
		return err
	}
	if b.ID <= 0 {
		return userError("the backend did not return a bill id")
	}
	r.res.BillID = b.ID
	r.res.BillNumber = number
	return nil
}

func (r *run) createOrder(ctx context.Context) error {
	o, err := r.svc.Backend.CreateOrder(ctx, backend.OrderInput{
		Date:           r.now.Format(dateLayout),
		Total:          r.res.Totals.GrandTotal,
		DeliveryMethod: r.draft.DeliveryMethod,
		Status:         backend.StatusPending,
		ClientID:       r.res.ClientID,
		BillID:         r.res.BillID,
	})
	if err != nil {
		return err
	}
	if o.ID <= 0 {
		return userError("the backend did not return an order id")
	}
	r.res.OrderID = o.ID
	return nil
}

// createLines issues the order lines concurrently. After the first failure no
// new line is started; lines already in flight are awaited.
func (r *run) createLines(ctx context.Context) error {
	ids := make([]int64, len(r.items))
	var failed atomic.Bool

	var g errgroup.Group
	g.SetLimit(r.svc.maxConcurrent)

	for i, it := range r.items {
		if failed.Load() {
			break
		}
		g.Go(func() error {
			if failed.Load() {
				return nil
			}
			line, err := r.svc.Backend.CreateOrderLine(ctx, backend.OrderLineInput{
				Quantity:  it.Quantity,
				Price:     it.UnitPrice,
				OrderID:   r.res.OrderID,
				ProductID: it.ProductID,
			})
			if err != nil {
				failed.Store(true)
				return fmt.Errorf("line for product %d: %w", it.ProductID, err)
			}
			ids[i] = line.ID
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	r.res.LineIDs = ids
	return nil
}

type userError string

func (e userError) Error() string { return string(e) }

var stageFallback = map[domain.Stage]string{
	domain.StageStock:     "could not check product stock",
	domain.StageClient:    "could not register the client",
	domain.StageAddress:   "could not register the address",
	domain.StageBill:      "could not create the bill",
	domain.StageOrder:     "could not create the order",
	domain.StageLineItems: "could not save the order items",
}

// stageMessage picks the most specific text available for a failed stage.
func stageMessage(stage domain.Stage, err error) string {
	var ue userError
	if errors.As(err, &ue) {
		return string(ue)
	}
	if msg := rest.Message(err); msg != "" {
		return msg
	}
	return stageFallback[stage]
}
