package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/billforge/invoicing-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

// rowQuerier is satisfied by both *pgxpool.Pool and pgx.Tx, so lookups
// on the create path can run inside the insert transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// findClient resolves a client by primary key. Pure read; a miss is a
// domain.NotFoundError naming the client.
func findClient(ctx context.Context, q rowQuerier, clientID int64) (*domain.Client, error) {
	var client domain.Client
	err := q.QueryRow(ctx, `
		SELECT id, name, address, company_registration_no
		FROM clients
		WHERE id = $1
	`, clientID).Scan(&client.ID, &client.Name, &client.Address, &client.CompanyRegistrationNo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "client", ID: clientID}
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &client, nil
}

// findProduct resolves a product by primary key, returning its current
// price for snapshotting.
func findProduct(ctx context.Context, q rowQuerier, productID int64) (*domain.Product, error) {
	var product domain.Product
	err := q.QueryRow(ctx, `
		SELECT id, name, price
		FROM products
		WHERE id = $1
	`, productID).Scan(&product.ID, &product.Name, &product.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "product", ID: productID}
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}
