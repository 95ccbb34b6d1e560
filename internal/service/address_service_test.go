package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/techmart-next/internal/models"
	"github.com/techmart-next/internal/repository"

	"gorm.io/gorm"
)

func newTestAddressService(t *testing.T) (*AddressService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	if err := db.AutoMigrate(&models.UserAddress{}); err != nil {
		t.Fatalf("auto migrate user address failed: %v", err)
	}
	return NewAddressService(repository.NewAddressRepository(db)), db
}

func addressesFor(t *testing.T, db *gorm.DB, userID uint) []models.UserAddress {
	t.Helper()

	var addresses []models.UserAddress
	if err := db.Where("user_id = ?", userID).Order("id asc").Find(&addresses).Error; err != nil {
		t.Fatalf("load addresses failed: %v", err)
	}
	return addresses
}

func countPrimary(addresses []models.UserAddress) int {
	count := 0
	for _, address := range addresses {
		if address.IsPrimary {
			count++
		}
	}
	return count
}

func TestAddFirstAddressBecomesPrimary(t *testing.T) {
	svc, db := newTestAddressService(t)

	first, err := svc.Add(AddAddressInput{UserID: 1, Address: "1 Main St", Phone: "555-0100"})
	if err != nil {
		t.Fatalf("add first address failed: %v", err)
	}
	if !first.IsPrimary {
		t.Fatalf("expected first address to be primary")
	}
	if first.Title != "Default" {
		t.Fatalf("expected default title, got %q", first.Title)
	}

	second, err := svc.Add(AddAddressInput{UserID: 1, Title: "Office", Address: "2 Work Ave"})
	if err != nil {
		t.Fatalf("add second address failed: %v", err)
	}
	if second.IsPrimary {
		t.Fatalf("expected second address to not be primary")
	}

	addresses := addressesFor(t, db, 1)
	if len(addresses) != 2 || countPrimary(addresses) != 1 {
		t.Fatalf("expected 2 addresses with 1 primary, got %+v", addresses)
	}
}

func TestAddAddressLimit(t *testing.T) {
	svc, db := newTestAddressService(t)

	for i := 0; i < 5; i++ {
		if _, err := svc.Add(AddAddressInput{UserID: 1, Address: fmt.Sprintf("%d Main St", i+1)}); err != nil {
			t.Fatalf("add address %d failed: %v", i+1, err)
		}
	}
	if _, err := svc.Add(AddAddressInput{UserID: 1, Address: "6 Main St"}); !errors.Is(err, ErrAddressLimit) {
		t.Fatalf("expected ErrAddressLimit, got %v", err)
	}
	if addresses := addressesFor(t, db, 1); len(addresses) != 5 {
		t.Fatalf("expected 5 addresses, got %d", len(addresses))
	}

	// 上限按用户独立计数
	if _, err := svc.Add(AddAddressInput{UserID: 2, Address: "1 Other St"}); err != nil {
		t.Fatalf("other user add failed: %v", err)
	}
}

func TestSetPrimaryDemotesOthers(t *testing.T) {
	svc, db := newTestAddressService(t)

	first, err := svc.Add(AddAddressInput{UserID: 1, Address: "1 Main St"})
	if err != nil {
		t.Fatalf("add first failed: %v", err)
	}
	second, err := svc.Add(AddAddressInput{UserID: 1, Title: "Office", Address: "2 Work Ave"})
	if err != nil {
		t.Fatalf("add second failed: %v", err)
	}

	if err := svc.SetPrimary(1, second.ID); err != nil {
		t.Fatalf("set primary failed: %v", err)
	}

	addresses := addressesFor(t, db, 1)
	if countPrimary(addresses) != 1 {
		t.Fatalf("expected exactly one primary, got %+v", addresses)
	}
	for _, address := range addresses {
		if address.ID == second.ID && !address.IsPrimary {
			t.Fatalf("expected address %d to be primary", second.ID)
		}
		if address.ID == first.ID && address.IsPrimary {
			t.Fatalf("expected address %d to be demoted", first.ID)
		}
	}
}

func TestSetPrimaryForeignAddressRollsBack(t *testing.T) {
	svc, db := newTestAddressService(t)

	mine, err := svc.Add(AddAddressInput{UserID: 1, Address: "1 Main St"})
	if err != nil {
		t.Fatalf("add own address failed: %v", err)
	}
	theirs, err := svc.Add(AddAddressInput{UserID: 2, Address: "9 Other St"})
	if err != nil {
		t.Fatalf("add foreign address failed: %v", err)
	}

	// 目标归属他人：事务回滚，自己的主地址保持不变
	if err := svc.SetPrimary(1, theirs.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	addresses := addressesFor(t, db, 1)
	if len(addresses) != 1 || !addresses[0].IsPrimary || addresses[0].ID != mine.ID {
		t.Fatalf("expected own primary unchanged, got %+v", addresses)
	}

	// 不存在的地址同样回滚
	if err := svc.SetPrimary(1, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing address, got %v", err)
	}
	if countPrimary(addressesFor(t, db, 1)) != 1 {
		t.Fatalf("expected primary to survive failed promote")
	}
}
