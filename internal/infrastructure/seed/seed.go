// Package seed define el conjunto de datos inicial: usuarios, catálogo, bodegas y saldo de oficina.
// Se usa cuando el almacén arranca vacío.
package seed

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
)

// DefaultPassword contraseña de todos los usuarios semilla.
const DefaultPassword = "password"

// OpeningNotes nota de las recepciones que representan el saldo inicial.
const OpeningNotes = "saldo inicial"

// Data es el conjunto semilla completo.
type Data struct {
	Users        []entity.User
	Products     []entity.Product
	Warehouses   []entity.Warehouse
	Stock        []entity.Stock
	Transactions []entity.Transaction
}

type productSeed struct {
	id, name string
	opening  int
}

var products = []productSeed{
	{"1", "Transmisor MD1160", 52},
	{"2", "Sensor de glucosa MD3660 #2", 169},
	{"3", "Parche reservorio MD8200 #10", 147},
	{"4", "Bomba MD8201", 49},
	{"5", "Nano Transmisor MD1158", 14},
	{"6", "Nano Sensor de glucosa MD3658 #2", 45},
}

type userSeed struct {
	id, name, email, role, phone string
}

var users = []userSeed{
	{"1", "Administrador", "admin@company.com", entity.RoleAdmin, "+57 300 000 0001"},
	{"2", "Ninel", "ninel@company.com", entity.RoleManager, "+57 300 234 5678"},
	{"3", "Kazbek", "kazbek@company.com", entity.RoleManager, "+57 300 345 6789"},
	{"4", "Gerente 3", "manager3@company.com", entity.RoleManager, "+57 300 456 7890"},
}

// Default construye el conjunto semilla. El saldo de oficina entra como transacciones
// "receipt" para que el libro y el stock coincidan desde el primer arranque.
func Default() (*Data, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("seed: hash de contraseña: %w", err)
	}
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	opening := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	adminID := users[0].id

	d := &Data{}
	for i, u := range users {
		created := base.AddDate(0, 0, i)
		d.Users = append(d.Users, entity.User{
			ID: u.id, Name: u.name, Email: u.email, Role: u.role, Phone: u.phone,
			PasswordHash: string(hash), CreatedAt: created, UpdatedAt: created,
		})
	}

	d.Warehouses = append(d.Warehouses, entity.Warehouse{
		ID: entity.OfficeWarehouseID, Name: "Almacén de oficina", Type: entity.WarehouseTypeOffice, CreatedAt: base,
	})
	for i, u := range users {
		if u.role != entity.RoleManager {
			continue
		}
		d.Warehouses = append(d.Warehouses, entity.Warehouse{
			ID: entity.ManagerWarehouseID(u.id), Name: "Almacén de " + u.name,
			Type: entity.WarehouseTypeManager, ManagerID: u.id, CreatedAt: base.AddDate(0, 0, i),
		})
	}

	for _, p := range products {
		d.Products = append(d.Products, entity.Product{
			ID: p.id, Name: p.name, Description: p.name, Unit: "ud", CreatedAt: base,
		})
		d.Stock = append(d.Stock, entity.Stock{
			ProductID: p.id, WarehouseID: entity.OfficeWarehouseID, Quantity: p.opening, UpdatedAt: opening,
		})
		d.Transactions = append(d.Transactions, entity.Transaction{
			ID:            "opening-" + p.id,
			Type:          entity.TransactionTypeReceipt,
			ProductID:     p.id,
			Quantity:      p.opening,
			ToWarehouseID: entity.OfficeWarehouseID,
			AdminID:       adminID,
			Date:          time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			Notes:         OpeningNotes,
			CreatedAt:     opening,
		})
	}
	for _, wh := range d.Warehouses[1:] {
		for _, p := range products {
			d.Stock = append(d.Stock, entity.Stock{ProductID: p.id, WarehouseID: wh.ID, UpdatedAt: wh.CreatedAt})
		}
	}
	return d, nil
}

// Snapshot convierte el conjunto semilla al formato del almacén en memoria.
func (d *Data) Snapshot() *memory.Snapshot {
	return &memory.Snapshot{
		Products:     append([]entity.Product(nil), d.Products...),
		Warehouses:   append([]entity.Warehouse(nil), d.Warehouses...),
		Stock:        append([]entity.Stock(nil), d.Stock...),
		Transactions: append([]entity.Transaction(nil), d.Transactions...),
		Users:        append([]entity.User(nil), d.Users...),
	}
}
