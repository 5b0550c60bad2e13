package model

import "time"

type Batch struct {
	Seq          int64     `db:"seq" json:"-"`
	BatchID      string    `db:"batch_id" json:"batch_id"`
	ProductName  string    `db:"product_name" json:"product_name"`
	Category     string    `db:"category" json:"category"`
	Variety      string    `db:"variety" json:"variety"`
	Quantity     int64     `db:"quantity" json:"quantity"`
	HarvestDate  time.Time `db:"harvest_date" json:"harvest_date"`
	Registrant   string    `db:"registrant" json:"registrant"`
	FarmName     string    `db:"farm_name" json:"farm_name"`
	FarmLocation string    `db:"farm_location" json:"farm_location"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	RegisteredAt time.Time `db:"registered_at" json:"registered_at"`
}
