package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/dwikikusuma/shoping-storefront/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type ListQuery struct {
	CategoryID int64
	Query      string
	Limit      int
	Cursor     string
}

type Service struct {
	repo ProductRepo
	sf   singleflight.Group
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	if id <= 0 {
		return domain.Product{}, fmt.Errorf("product id must be positive: %w", ErrInvalidInput)
	}
	return s.repo.Get(ctx, id)
}

// ListProducts filters the catalog by category and a case-insensitive name
// match, ordered by id. Cursor is the id of the last product already seen.
func (s *Service) ListProducts(ctx context.Context, q ListQuery) (domain.Page, error) {
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	var after int64
	if c := strings.TrimSpace(q.Cursor); c != "" {
		n, err := strconv.ParseInt(c, 10, 64)
		if err != nil || n < 0 {
			return domain.Page{}, fmt.Errorf("cursor %q: %w", c, ErrInvalidInput)
		}
		after = n
	}

	products, err := s.products(ctx)
	if err != nil {
		return domain.Page{}, err
	}

	needle := strings.ToLower(strings.TrimSpace(q.Query))
	page := domain.Page{Products: []domain.Product{}}
	for _, p := range products {
		if p.ID <= after {
			continue
		}
		if q.CategoryID > 0 && p.CategoryID != q.CategoryID {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if len(page.Products) == q.Limit {
			page.NextCursor = strconv.FormatInt(page.Products[len(page.Products)-1].ID, 10)
			break
		}
		page.Products = append(page.Products, p)
	}
	return page, nil
}

type listing struct {
	products   []domain.Product
	categories []domain.Category
}

// products loads the full catalog with category names. Identical concurrent
// loads share a single pair of backend calls.
func (s *Service) products(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := s.sf.Do("products", func() (any, error) {
		var l listing
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			l.products, err = s.repo.List(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			l.categories, err = s.repo.Categories(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}

		names := categoryNames(l.categories)
		out := make([]domain.Product, len(l.products))
		for i, p := range l.products {
			p.CategoryName = names[p.CategoryID]
			out[i] = p
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	v, err, _ := s.sf.Do("categories", func() (any, error) {
		return s.repo.Categories(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Category), nil
}

// ProductDetail returns a product with its category name and reviews.
func (s *Service) ProductDetail(ctx context.Context, id int64) (domain.ProductDetail, error) {
	if id <= 0 {
		return domain.ProductDetail{}, fmt.Errorf("product id must be positive: %w", ErrInvalidInput)
	}

	var (
		product    domain.Product
		categories []domain.Category
		reviews    []domain.Review
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		product, err = s.repo.Get(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.repo.Categories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = s.repo.Reviews(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.ProductDetail{}, err
	}

	product.CategoryName = categoryNames(categories)[product.CategoryID]
	detail := domain.ProductDetail{Product: product, Reviews: []domain.Review{}}
	var sum float64
	for _, r := range reviews {
		if r.ProductID == id {
			detail.Reviews = append(detail.Reviews, r)
			sum += r.Rating
		}
	}
	if n := len(detail.Reviews); n > 0 {
		detail.AverageRating = math.Round(sum/float64(n)*10) / 10
	}
	return detail, nil
}

func categoryNames(cs []domain.Category) map[int64]string {
	m := make(map[int64]string, len(cs))
	for _, c := range cs {
		m[c.ID] = c.Name
	}
	return m
}
