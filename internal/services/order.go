package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/repos"
	"github.com/printforge/printforge-backend/internal/types"
)

// LinkInput is the canonical link representation. Handlers fold the three
// accepted wire formats (single link, list of links, list of {url, copies})
// into this before the service sees anything.
type LinkInput struct {
	URL    string `json:"url"`
	Copies int    `json:"copies"`
}

type CreateOrderInput struct {
	ID       string
	UserID   string
	UserName string
	Links    []LinkInput
	Colors   []string
	Comment  *string
	Status   string
}

type UpdateOrderInput struct {
	ModelLink *string
	Comment   *string
	Status    *string
	Colors    []string // nil means leave untouched
}

// OrderDetail is an order plus its child rows, in API shape.
type OrderDetail struct {
	ID                   string             `json:"id"`
	UserID               string             `json:"userId"`
	UserName             string             `json:"userName"`
	ModelLink            string             `json:"modelLink"`
	ModelLinks           []string           `json:"modelLinks"`
	ModelLinksWithCopies []LinkInput        `json:"modelLinksWithCopies"`
	Comment              *string            `json:"comment"`
	Status               string             `json:"status"`
	Colors               []string           `json:"colors"`
	Links                []*types.OrderLink `json:"links"`
	CreatedAt            time.Time          `json:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt"`
}

type OrderService interface {
	Create(ctx context.Context, input CreateOrderInput) error
	Get(ctx context.Context, id string) (*OrderDetail, error)
	List(ctx context.Context, filter repos.OrderFilter) ([]*OrderDetail, error)
	Update(ctx context.Context, id string, input UpdateOrderInput) error
	Delete(ctx context.Context, id string) error
	MarkLinkPrinted(ctx context.Context, orderID string, linkID uint, printed bool) error
}

type orderService struct {
	db           *gorm.DB
	log          *logger.Logger
	orderRepo    repos.OrderRepo
	linkRepo     repos.OrderLinkRepo
	colorTagRepo repos.OrderColorRepo
}

func NewOrderService(db *gorm.DB, log *logger.Logger, orderRepo repos.OrderRepo, linkRepo repos.OrderLinkRepo, colorTagRepo repos.OrderColorRepo) OrderService {
	serviceLog := log.With("service", "OrderService")
	return &orderService{
		db:           db,
		log:          serviceLog,
		orderRepo:    orderRepo,
		linkRepo:     linkRepo,
		colorTagRepo: colorTagRepo,
	}
}

// Create persists the order and all its child rows in one transaction.
// Validation happens before the first write; any mid-transaction failure
// rolls everything back, so a partial order is never visible.
func (os *orderService) Create(ctx context.Context, input CreateOrderInput) error {
	links := make([]LinkInput, 0, len(input.Links))
	for _, l := range input.Links {
		if strings.TrimSpace(l.URL) == "" {
			continue
		}
		if l.Copies < 1 {
			l.Copies = 1
		}
		links = append(links, l)
	}

	hasColor := false
	for _, name := range input.Colors {
		if name != "" {
			hasColor = true
			break
		}
	}

	if input.ID == "" || input.UserID == "" || input.UserName == "" || len(links) == 0 || !hasColor {
		return invalidf("missing required fields")
	}

	status := input.Status
	if status == "" {
		status = types.OrderStatusCreated
	}

	err := os.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order := &types.Order{
			ID:        input.ID,
			UserID:    input.UserID,
			UserName:  input.UserName,
			ModelLink: links[0].URL,
			Comment:   input.Comment,
			Status:    status,
		}
		if err := os.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		rows := make([]*types.OrderLink, 0, len(links))
		for i, l := range links {
			rows = append(rows, &types.OrderLink{
				OrderID:   input.ID,
				LinkURL:   l.URL,
				Copies:    l.Copies,
				LinkOrder: i,
			})
		}
		if err := os.linkRepo.CreateBatch(ctx, tx, rows); err != nil {
			return fmt.Errorf("insert order links: %w", err)
		}

		for _, name := range input.Colors {
			if name == "" {
				continue
			}
			colorID, _, err := ResolveColor(ctx, tx, input.UserID, name)
			if err != nil {
				return err
			}
			oc := &types.OrderColor{
				OrderID:   input.ID,
				ColorID:   &colorID,
				ColorName: name,
			}
			if err := os.colorTagRepo.Create(ctx, tx, oc); err != nil {
				return fmt.Errorf("insert order color %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return conflictf("order %s already exists", input.ID)
		}
		return err
	}
	return nil
}

func (os *orderService) Get(ctx context.Context, id string) (*OrderDetail, error) {
	order, err := os.orderRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("order %s", id)
		}
		return nil, err
	}

	links, err := os.linkRepo.ListByOrder(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	colors, err := os.colorTagRepo.ListByOrder(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	return assembleDetail(order, links, colors), nil
}

func (os *orderService) List(ctx context.Context, filter repos.OrderFilter) ([]*OrderDetail, error) {
	orders, err := os.orderRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	links, err := os.linkRepo.ListByOrders(ctx, nil, ids)
	if err != nil {
		return nil, err
	}
	colors, err := os.colorTagRepo.ListByOrders(ctx, nil, ids)
	if err != nil {
		return nil, err
	}

	linksByOrder := map[string][]*types.OrderLink{}
	for _, l := range links {
		linksByOrder[l.OrderID] = append(linksByOrder[l.OrderID], l)
	}
	colorsByOrder := map[string][]*types.OrderColor{}
	for _, c := range colors {
		colorsByOrder[c.OrderID] = append(colorsByOrder[c.OrderID], c)
	}

	details := make([]*OrderDetail, 0, len(orders))
	for _, o := range orders {
		details = append(details, assembleDetail(o, linksByOrder[o.ID], colorsByOrder[o.ID]))
	}
	return details, nil
}

func (os *orderService) Update(ctx context.Context, id string, input UpdateOrderInput) error {
	return os.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := os.orderRepo.GetByID(ctx, tx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("order %s", id)
			}
			return err
		}

		fields := map[string]any{}
		if input.ModelLink != nil {
			fields["model_link"] = *input.ModelLink
		}
		if input.Comment != nil {
			fields["comment"] = *input.Comment
		}
		if input.Status != nil {
			fields["status"] = *input.Status
		}
		if len(fields) > 0 {
			if _, err := os.orderRepo.Update(ctx, tx, id, fields); err != nil {
				return err
			}
		}

		if input.Colors != nil {
			if _, err := os.colorTagRepo.DeleteByOrder(ctx, tx, id); err != nil {
				return err
			}
			for _, name := range input.Colors {
				if name == "" {
					continue
				}
				oc := &types.OrderColor{OrderID: id, ColorName: name}
				if err := os.colorTagRepo.Create(ctx, tx, oc); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (os *orderService) Delete(ctx context.Context, id string) error {
	return os.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := os.linkRepo.DeleteByOrder(ctx, tx, id); err != nil {
			return err
		}
		if _, err := os.colorTagRepo.DeleteByOrder(ctx, tx, id); err != nil {
			return err
		}
		rows, err := os.orderRepo.Delete(ctx, tx, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return notFoundf("order %s", id)
		}
		return nil
	})
}

func (os *orderService) MarkLinkPrinted(ctx context.Context, orderID string, linkID uint, printed bool) error {
	rows, err := os.linkRepo.SetPrinted(ctx, nil, orderID, linkID, printed)
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFoundf("order link %d", linkID)
	}
	return nil
}

func assembleDetail(order *types.Order, links []*types.OrderLink, colors []*types.OrderColor) *OrderDetail {
	urls := make([]string, 0, len(links))
	withCopies := make([]LinkInput, 0, len(links))
	for _, l := range links {
		urls = append(urls, l.LinkURL)
		withCopies = append(withCopies, LinkInput{URL: l.LinkURL, Copies: l.Copies})
	}

	modelLink := order.ModelLink
	if len(urls) > 0 {
		modelLink = urls[0]
	}

	names := make([]string, 0, len(colors))
	for _, c := range colors {
		names = append(names, c.ColorName)
	}

	return &OrderDetail{
		ID:                   order.ID,
		UserID:               order.UserID,
		UserName:             order.UserName,
		ModelLink:            modelLink,
		ModelLinks:           urls,
		ModelLinksWithCopies: withCopies,
		Comment:              order.Comment,
		Status:               order.Status,
		Colors:               names,
		Links:                links,
		CreatedAt:            order.CreatedAt,
		UpdatedAt:            order.UpdatedAt,
	}
}
