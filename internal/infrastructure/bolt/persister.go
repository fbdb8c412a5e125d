// Package bolt guarda el almacén en memoria en un archivo bbolt: un blob JSON por colección.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
)

var _ memory.Persister = (*Persister)(nil)

var bucketName = []byte("ledger")

// Persister implementa memory.Persister sobre bbolt.
type Persister struct {
	db *bbolt.DB
}

// Open abre (o crea) el archivo y el bucket.
func Open(path string) (*Persister, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt: abrir %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bolt: crear bucket: %w", err)
	}
	return &Persister{db: db}, nil
}

// Close cierra el archivo.
func (p *Persister) Close() error {
	return p.db.Close()
}

// Load lee todas las colecciones. Devuelve (nil, nil) si el archivo no tiene datos.
func (p *Persister) Load(ctx context.Context) (*memory.Snapshot, error) {
	snap := &memory.Snapshot{}
	found := false
	err := p.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		for _, c := range memory.AllCollections {
			raw := b.Get([]byte(c))
			if raw == nil {
				continue
			}
			found = true
			if err := json.Unmarshal(raw, target(snap, c)); err != nil {
				return fmt.Errorf("colección %s: %w", c, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bolt: leer: %w", err)
	}
	if !found {
		return nil, nil
	}
	return snap, nil
}

// Save escribe las colecciones indicadas en una sola transacción bbolt (última escritura gana por clave).
func (p *Persister) Save(ctx context.Context, snap *memory.Snapshot, collections []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		for _, c := range collections {
			raw, err := json.Marshal(target(snap, c))
			if err != nil {
				return fmt.Errorf("bolt: serializar %s: %w", c, err)
			}
			if err := b.Put([]byte(c), raw); err != nil {
				return fmt.Errorf("bolt: guardar %s: %w", c, err)
			}
		}
		return nil
	})
}

// target devuelve el campo del snapshot que corresponde a la colección.
func target(snap *memory.Snapshot, collection string) any {
	switch collection {
	case memory.CollectionProducts:
		return &snap.Products
	case memory.CollectionWarehouses:
		return &snap.Warehouses
	case memory.CollectionStock:
		return &snap.Stock
	case memory.CollectionTransactions:
		return &snap.Transactions
	case memory.CollectionSales:
		return &snap.Sales
	case memory.CollectionUsers:
		return &snap.Users
	}
	return new(json.RawMessage)
}
