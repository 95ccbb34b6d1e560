package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/techmart-next/internal/models"
	"github.com/techmart-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.SubCategory{},
		&models.Brand{},
		&models.Product{},
		&models.CartLine{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func newTestCartService(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	return NewCartService(cartRepo, NewInventoryOracle(productRepo)), db
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:       name,
		Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(price)),
		Stock:      stock,
		CategoryID: 1,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func cartLinesFor(t *testing.T, db *gorm.DB, owner models.CartOwner) []models.CartLine {
	t.Helper()

	var lines []models.CartLine
	query := db.Order("id asc")
	if owner.IsUser() {
		query = query.Where("user_id = ?", owner.UserID)
	} else {
		query = query.Where("guest_id = ?", owner.GuestID)
	}
	if err := query.Find(&lines).Error; err != nil {
		t.Fatalf("load cart lines failed: %v", err)
	}
	return lines
}

func TestAddMergesExistingLine(t *testing.T) {
	svc, db := newTestCartService(t)
	product := createTestProduct(t, db, "Earphones", 99.99, 10)
	owner := models.UserCartOwner(1)

	if err := svc.Add(AddCartLineInput{Owner: owner, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := svc.Add(AddCartLineInput{Owner: owner, ProductID: product.ID, Quantity: 3}); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	lines := cartLinesFor(t, db, owner)
	if len(lines) != 1 {
		t.Fatalf("expected 1 merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", lines[0].Quantity)
	}
}

func TestAddRejectsQuantityBeyondStock(t *testing.T) {
	svc, db := newTestCartService(t)
	product := createTestProduct(t, db, "Watch", 199, 5)
	owner := models.UserCartOwner(1)

	if err := svc.Add(AddCartLineInput{Owner: owner, ProductID: product.ID, Quantity: 6}); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if lines := cartLinesFor(t, db, owner); len(lines) != 0 {
		t.Fatalf("expected no line after rejected add, got %d", len(lines))
	}

	if err := svc.Add(AddCartLineInput{Owner: owner, ProductID: product.ID, Quantity: 3}); err != nil {
		t.Fatalf("add within stock failed: %v", err)
	}
	// 已有 3 件，再加 3 件会超出库存 5
	if err := svc.Add(AddCartLineInput{Owner: owner, ProductID: product.ID, Quantity: 3}); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock on merge, got %v", err)
	}

	lines := cartLinesFor(t, db, owner)
	if len(lines) != 1 || lines[0].Quantity != 3 {
		t.Fatalf("expected line to stay at quantity 3, got %+v", lines)
	}
}

func TestAddUnknownProduct(t *testing.T) {
	svc, _ := newTestCartService(t)
	owner := models.UserCartOwner(1)

	if err := svc.Add(AddCartLineInput{Owner: owner, ProductID: 999, Quantity: 1}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestAddRejectsMissingOwner(t *testing.T) {
	svc, db := newTestCartService(t)
	product := createTestProduct(t, db, "Mat", 24.9, 10)

	err := svc.Add(AddCartLineInput{Owner: models.CartOwner{}, ProductID: product.ID, Quantity: 1})
	if !errors.Is(err, ErrOwnerRequired) {
		t.Fatalf("expected ErrOwnerRequired, got %v", err)
	}
	if err := svc.Add(AddCartLineInput{Owner: models.UserCartOwner(1), ProductID: product.ID, Quantity: 0}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero quantity, got %v", err)
	}
}

func TestUpdateSetsAbsoluteQuantity(t *testing.T) {
	svc, db := newTestCartService(t)
	product := createTestProduct(t, db, "Cookware", 149.5, 8)
	owner := models.GuestCartOwner("guest-abc")

	if err := svc.Add(AddCartLineInput{Owner: owner, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	lines := cartLinesFor(t, db, owner)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	lineID := lines[0].ID

	if err := svc.Update(owner, lineID, 5); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	lines = cartLinesFor(t, db, owner)
	if lines[0].Quantity != 5 {
		t.Fatalf("expected absolute quantity 5, got %d", lines[0].Quantity)
	}

	// 绝对覆盖超出库存
	if err := svc.Update(owner, lineID, 9); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	lines = cartLinesFor(t, db, owner)
	if lines[0].Quantity != 5 {
		t.Fatalf("expected quantity unchanged at 5, got %d", lines[0].Quantity)
	}
}

func TestUpdateUnknownLine(t *testing.T) {
	svc, _ := newTestCartService(t)

	if err := svc.Update(models.UserCartOwner(1), 42, 1); !errors.Is(err, ErrCartLineNotFound) {
		t.Fatalf("expected ErrCartLineNotFound, got %v", err)
	}
}

func TestOwnerIsolation(t *testing.T) {
	svc, db := newTestCartService(t)
	product := createTestProduct(t, db, "Earphones", 99.99, 10)
	ownerA := models.UserCartOwner(1)
	ownerB := models.UserCartOwner(2)
	guest := models.GuestCartOwner("guest-1")

	if err := svc.Add(AddCartLineInput{Owner: ownerA, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add for user A failed: %v", err)
	}
	if err := svc.Add(AddCartLineInput{Owner: guest, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add for guest failed: %v", err)
	}

	lineA := cartLinesFor(t, db, ownerA)[0]

	// 他人操作不命中，与不存在同样返回未找到
	if err := svc.Update(ownerB, lineA.ID, 5); !errors.Is(err, ErrCartLineNotFound) {
		t.Fatalf("expected ErrCartLineNotFound for foreign update, got %v", err)
	}
	if err := svc.Remove(ownerB, lineA.ID); !errors.Is(err, ErrCartLineNotFound) {
		t.Fatalf("expected ErrCartLineNotFound for foreign remove, got %v", err)
	}
	if err := svc.Remove(guest, lineA.ID); !errors.Is(err, ErrCartLineNotFound) {
		t.Fatalf("expected ErrCartLineNotFound for guest removing user line, got %v", err)
	}

	// 同一商品在不同所有者下是独立的行，不发生合并
	if got := cartLinesFor(t, db, ownerA)[0].Quantity; got != 2 {
		t.Fatalf("user line quantity changed to %d", got)
	}
	if got := cartLinesFor(t, db, guest)[0].Quantity; got != 1 {
		t.Fatalf("guest line quantity changed to %d", got)
	}

	listA, err := svc.List(ownerA)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listA) != 1 || listA[0].Quantity != 2 {
		t.Fatalf("unexpected user cart view: %+v", listA)
	}
}

func TestRemoveDeletesOwnLine(t *testing.T) {
	svc, db := newTestCartService(t)
	product := createTestProduct(t, db, "Watch", 199, 10)
	owner := models.UserCartOwner(7)

	if err := svc.Add(AddCartLineInput{Owner: owner, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	lineID := cartLinesFor(t, db, owner)[0].ID

	if err := svc.Remove(owner, lineID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if lines := cartLinesFor(t, db, owner); len(lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(lines))
	}
	// 再删一次按未找到处理
	if err := svc.Remove(owner, lineID); !errors.Is(err, ErrCartLineNotFound) {
		t.Fatalf("expected ErrCartLineNotFound, got %v", err)
	}
}

func TestClearGuestOnlyRemovesGuestLines(t *testing.T) {
	svc, db := newTestCartService(t)
	product := createTestProduct(t, db, "Mat", 24.9, 20)
	guest := models.GuestCartOwner("guest-xyz")
	user := models.UserCartOwner(3)

	if err := svc.Add(AddCartLineInput{Owner: guest, ProductID: product.ID, Quantity: 4}); err != nil {
		t.Fatalf("guest add failed: %v", err)
	}
	if err := svc.Add(AddCartLineInput{Owner: user, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("user add failed: %v", err)
	}

	deleted, err := svc.ClearGuest("guest-xyz")
	if err != nil {
		t.Fatalf("clear guest failed: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 deleted line, got %d", deleted)
	}

	// 游客的行被丢弃而不是并入用户购物车
	if lines := cartLinesFor(t, db, guest); len(lines) != 0 {
		t.Fatalf("expected guest cart empty, got %d lines", len(lines))
	}
	userLines := cartLinesFor(t, db, user)
	if len(userLines) != 1 || userLines[0].Quantity != 2 {
		t.Fatalf("expected user cart untouched, got %+v", userLines)
	}

	// 幂等：再次清空删除 0 行且不报错
	deleted, err = svc.ClearGuest("guest-xyz")
	if err != nil || deleted != 0 {
		t.Fatalf("expected idempotent clear, got deleted=%d err=%v", deleted, err)
	}
}

func TestListEnrichesWithCurrentProduct(t *testing.T) {
	svc, db := newTestCartService(t)
	product := createTestProduct(t, db, "Cookware", 149.5, 8)
	owner := models.UserCartOwner(9)

	if err := svc.Add(AddCartLineInput{Owner: owner, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// 加购后改价，列表应反映现价而不是加购时的价格
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("price", models.NewMoneyFromDecimal(decimal.NewFromFloat(129.00))).Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}

	details, err := svc.List(owner)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("expected 1 detail, got %d", len(details))
	}
	detail := details[0]
	if detail.Name != "Cookware" || detail.Quantity != 2 || detail.Stock != 8 {
		t.Fatalf("unexpected detail: %+v", detail)
	}
	if detail.Price.Float64() != 129.00 {
		t.Fatalf("expected current price 129.00, got %v", detail.Price)
	}
}

func TestListDropsStaleLines(t *testing.T) {
	svc, db := newTestCartService(t)
	product := createTestProduct(t, db, "Discontinued", 10, 5)
	owner := models.UserCartOwner(4)

	if err := svc.Add(AddCartLineInput{Owner: owner, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := db.Delete(&models.Product{}, product.ID).Error; err != nil {
		t.Fatalf("delete product failed: %v", err)
	}

	details, err := svc.List(owner)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(details) != 0 {
		t.Fatalf("expected stale line dropped from view, got %+v", details)
	}
	if lines := cartLinesFor(t, db, owner); len(lines) != 0 {
		t.Fatalf("expected stale line cleaned up, got %d lines", len(lines))
	}
}
