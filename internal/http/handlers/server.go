package handlers

import (
	"github.com/donlucho/ferreteria-api/internal/redissvc"
	"github.com/donlucho/ferreteria-api/internal/repo"
	"github.com/donlucho/ferreteria-api/internal/sales"
)

var (
	productRepo    repo.ProductRepository
	saleRepo       repo.SaleRepository
	movementRepo   repo.MovementRepository
	supplierRepo   repo.SupplierRepository
	alertRepo      repo.AlertRepository
	actionLogRepo  repo.ActionLogRepository
	accountingRepo repo.AccountingRepository
	userRepo       repo.UserRepository

	salePoster *sales.Poster
	cache      *redissvc.RedisService
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetSaleRepo(r repo.SaleRepository) {
	saleRepo = r
}

func SetMovementRepo(r repo.MovementRepository) {
	movementRepo = r
}

func SetSupplierRepo(r repo.SupplierRepository) {
	supplierRepo = r
}

func SetAlertRepo(r repo.AlertRepository) {
	alertRepo = r
}

func SetActionLogRepo(r repo.ActionLogRepository) {
	actionLogRepo = r
}

func SetAccountingRepo(r repo.AccountingRepository) {
	accountingRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetSalePoster(p *sales.Poster) {
	salePoster = p
}

func SetCache(rs *redissvc.RedisService) {
	cache = rs
}
