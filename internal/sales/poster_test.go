package sales

import (
	"errors"
	"testing"
	"time"

	"github.com/donlucho/ferreteria-api/internal/models"
	"github.com/donlucho/ferreteria-api/internal/repo"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func seedCatalog(t *testing.T, products *repo.InMemoryProductRepository) {
	t.Helper()
	seed := []models.Product{
		{Name: "Martillo", Price: 5.0, Stock: 5, MinStock: 1},
		{Name: "Taladro", Price: 50.0, Stock: 3, MinStock: 2},
	}
	for _, p := range seed {
		if _, err := products.Create(p); err != nil {
			t.Fatalf("seeding product %q: %v", p.Name, err)
		}
	}
}

func newTestPoster(t *testing.T) (*Poster, *repo.InMemoryProductRepository, *repo.InMemorySaleRepository, *repo.InMemoryMovementRepository, *repo.InMemoryAlertRepository) {
	t.Helper()
	products := repo.NewInMemoryProductRepository()
	salesRepo := repo.NewInMemorySaleRepository()
	movements := repo.NewInMemoryMovementRepository()
	alerts := repo.NewInMemoryAlertRepository()
	seedCatalog(t, products)

	p := NewPoster(products, salesRepo, movements, alerts)
	p.now = fixedClock(time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC))
	return p, products, salesRepo, movements, alerts
}

func TestPostRecordsSaleAndDecrementsStock(t *testing.T) {
	poster, products, salesRepo, movements, _ := newTestPoster(t)

	sale, err := poster.Post("Juan Pérez", models.DocumentBoleta, []models.SaleItem{
		{ProductID: 1, Quantity: 2}, // martillo 2 * 5.0
		{ProductID: 2, Quantity: 1}, // taladro 1 * 50.0
	}, 7)
	if err != nil {
		t.Fatalf("Post returned error: %v", err)
	}

	if sale.SaleNumber != "V-20250315-001" {
		t.Errorf("sale number = %q, want V-20250315-001", sale.SaleNumber)
	}
	if sale.Total != 60.0 {
		t.Errorf("total = %v, want 60.0", sale.Total)
	}
	if sale.UserID != 7 {
		t.Errorf("user id = %d, want 7", sale.UserID)
	}

	martillo, _ := products.GetByID(1)
	if martillo.Stock != 3 {
		t.Errorf("martillo stock = %d, want 3", martillo.Stock)
	}
	taladro, _ := products.GetByID(2)
	if taladro.Stock != 2 {
		t.Errorf("taladro stock = %d, want 2", taladro.Stock)
	}

	stored, err := salesRepo.GetByID(sale.ID)
	if err != nil {
		t.Fatalf("sale not stored: %v", err)
	}
	if len(stored.Items) != 2 {
		t.Errorf("stored items = %d, want 2", len(stored.Items))
	}

	logged := movements.All()
	if len(logged) != 2 {
		t.Fatalf("movements logged = %d, want 2", len(logged))
	}
	if logged[0].Kind != models.MovementSale || logged[0].Delta != -2 {
		t.Errorf("first movement = %+v, want sale/-2", logged[0])
	}
}

func TestPostSequencesNumbersWithinDay(t *testing.T) {
	poster, _, _, _, _ := newTestPoster(t)

	for i, want := range []string{"V-20250315-001", "V-20250315-002", "V-20250315-003"} {
		sale, err := poster.Post("Cliente", models.DocumentBoleta, []models.SaleItem{{ProductID: 1, Quantity: 1}}, 1)
		if err != nil {
			t.Fatalf("sale %d: %v", i+1, err)
		}
		if sale.SaleNumber != want {
			t.Errorf("sale %d number = %q, want %q", i+1, sale.SaleNumber, want)
		}
	}
}

func TestPostValidationFailureWritesNothing(t *testing.T) {
	poster, products, salesRepo, movements, _ := newTestPoster(t)

	_, err := poster.Post("Cliente", models.DocumentBoleta, []models.SaleItem{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 100}, // more than available
	}, 1)

	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected *InsufficientStockError, got %v", err)
	}

	if all, _ := salesRepo.GetAll(); len(all) != 0 {
		t.Errorf("sales recorded = %d, want 0", len(all))
	}
	if martillo, _ := products.GetByID(1); martillo.Stock != 5 {
		t.Errorf("martillo stock = %d, want untouched 5", martillo.Stock)
	}
	if len(movements.All()) != 0 {
		t.Errorf("movements logged on failed validation")
	}
}

// failingSaleRepo refuses Create, simulating a storage fault between
// validation and recording.
type failingSaleRepo struct {
	repo.SaleRepository
}

func (f *failingSaleRepo) Create(models.Sale) (models.Sale, error) {
	return models.Sale{}, errors.New("storage down")
}

func TestPostRecordFailureLeavesStockUntouched(t *testing.T) {
	products := repo.NewInMemoryProductRepository()
	seedCatalog(t, products)
	movements := repo.NewInMemoryMovementRepository()

	poster := NewPoster(products, &failingSaleRepo{repo.NewInMemorySaleRepository()}, movements, repo.NewInMemoryAlertRepository())
	poster.now = fixedClock(time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC))

	_, err := poster.Post("Cliente", models.DocumentBoleta, []models.SaleItem{{ProductID: 1, Quantity: 2}}, 1)
	if err == nil {
		t.Fatal("expected error from failing sale repo")
	}

	if martillo, _ := products.GetByID(1); martillo.Stock != 5 {
		t.Errorf("martillo stock = %d, want untouched 5", martillo.Stock)
	}
	if len(movements.All()) != 0 {
		t.Errorf("movements logged despite recording failure")
	}
}

// flakyProductRepo refuses AdjustStock for one product id, simulating a
// mid-sequence fault after the sale row was recorded.
type flakyProductRepo struct {
	repo.ProductRepository
	refuseID int
}

func (f *flakyProductRepo) AdjustStock(productID, delta int) (models.Product, error) {
	if productID == f.refuseID {
		return models.Product{}, errors.New("adjustment refused")
	}
	return f.ProductRepository.AdjustStock(productID, delta)
}

func TestPostPartialAdjustmentKeepsSale(t *testing.T) {
	products := repo.NewInMemoryProductRepository()
	seedCatalog(t, products)
	salesRepo := repo.NewInMemorySaleRepository()

	poster := NewPoster(&flakyProductRepo{products, 2}, salesRepo, repo.NewInMemoryMovementRepository(), repo.NewInMemoryAlertRepository())
	poster.now = fixedClock(time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC))

	_, err := poster.Post("Cliente", models.DocumentFactura, []models.SaleItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}, 1)

	var partial *PartialAdjustmentError
	if !errors.As(err, &partial) {
		t.Fatalf("expected *PartialAdjustmentError, got %v", err)
	}
	if partial.SaleNumber != "V-20250315-001" {
		t.Errorf("partial.SaleNumber = %q, want V-20250315-001", partial.SaleNumber)
	}
	if len(partial.Applied) != 1 || partial.Applied[0].ProductID != 1 {
		t.Errorf("partial.Applied = %+v, want the first line", partial.Applied)
	}
	if partial.Failed.ProductID != 2 {
		t.Errorf("partial.Failed = %+v, want product 2", partial.Failed)
	}
	if len(partial.Remaining) != 0 {
		t.Errorf("partial.Remaining = %+v, want empty", partial.Remaining)
	}

	// The sale row stays; first line's decrement stays too.
	if all, _ := salesRepo.GetAll(); len(all) != 1 {
		t.Fatalf("sales recorded = %d, want 1", len(all))
	}
	if martillo, _ := products.GetByID(1); martillo.Stock != 3 {
		t.Errorf("martillo stock = %d, want 3", martillo.Stock)
	}
	if taladro, _ := products.GetByID(2); taladro.Stock != 3 {
		t.Errorf("taladro stock = %d, want untouched 3", taladro.Stock)
	}
}

func TestPostRaisesLowStockAlert(t *testing.T) {
	poster, _, _, _, alerts := newTestPoster(t)

	// Taladro has stock 3, min 2; selling 1 leaves 2 which hits the minimum.
	if _, err := poster.Post("Cliente", models.DocumentBoleta, []models.SaleItem{{ProductID: 2, Quantity: 1}}, 1); err != nil {
		t.Fatalf("Post returned error: %v", err)
	}

	raised, _ := alerts.GetAll()
	if len(raised) != 1 {
		t.Fatalf("alerts raised = %d, want 1", len(raised))
	}
	if raised[0].AlertType != models.AlertLowStock {
		t.Errorf("alert type = %q, want %q", raised[0].AlertType, models.AlertLowStock)
	}
}

func TestEditMetadataKeepsItemsAndStock(t *testing.T) {
	poster, products, salesRepo, _, _ := newTestPoster(t)

	sale, err := poster.Post("Juan", models.DocumentBoleta, []models.SaleItem{{ProductID: 1, Quantity: 2}}, 1)
	if err != nil {
		t.Fatalf("Post returned error: %v", err)
	}

	updated, err := poster.EditMetadata(sale.ID, "Juana Rojas", models.DocumentFactura)
	if err != nil {
		t.Fatalf("EditMetadata returned error: %v", err)
	}
	if updated.CustomerName != "Juana Rojas" || updated.DocumentType != models.DocumentFactura {
		t.Errorf("metadata not updated: %+v", updated)
	}
	if updated.SaleNumber != sale.SaleNumber {
		t.Errorf("sale number changed from %q to %q", sale.SaleNumber, updated.SaleNumber)
	}

	stored, _ := salesRepo.GetByID(sale.ID)
	if len(stored.Items) != 1 || stored.Items[0].Quantity != 2 {
		t.Errorf("items changed: %+v", stored.Items)
	}
	if martillo, _ := products.GetByID(1); martillo.Stock != 3 {
		t.Errorf("martillo stock = %d, want unchanged 3", martillo.Stock)
	}
}

func TestDeleteDoesNotRestoreStock(t *testing.T) {
	poster, products, salesRepo, _, _ := newTestPoster(t)

	sale, err := poster.Post("Juan", models.DocumentBoleta, []models.SaleItem{{ProductID: 1, Quantity: 2}}, 1)
	if err != nil {
		t.Fatalf("Post returned error: %v", err)
	}

	if err := poster.Delete(sale.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := salesRepo.GetByID(sale.ID); !errors.Is(err, repo.ErrSaleNotFound) {
		t.Errorf("sale still present after delete")
	}
	if martillo, _ := products.GetByID(1); martillo.Stock != 3 {
		t.Errorf("martillo stock = %d, want 3 (deletion must not restore stock)", martillo.Stock)
	}

	// The allocator derives from the latest surviving sale, so deleting it
	// restarts the derived sequence. The unique constraint on sale_number is
	// what rejects collisions with rows that still exist.
	next, err := poster.Post("Otro", models.DocumentBoleta, []models.SaleItem{{ProductID: 1, Quantity: 1}}, 1)
	if err != nil {
		t.Fatalf("Post returned error: %v", err)
	}
	if next.SaleNumber != "V-20250315-001" {
		t.Errorf("number after deleting the only sale = %q, want V-20250315-001", next.SaleNumber)
	}
}
