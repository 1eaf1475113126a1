package repository

import "context"

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Customers     CustomerRepository
	Payments      PaymentRepository
	Sales         SaleRepository
	Subscriptions SubscriptionRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback si no.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
