package model

import "hotelpms/shared/model"

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID           = "id"
	FieldName         = "name"
	FieldPhone        = "phone"
	FieldEmail        = "email"
	FieldIDProofImage = "id_proof_image"
	FieldGSTNumber    = "gst_number"
)

type Customer struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	Phone         string `db:"phone"`
	Email         string `db:"email"`
	IDProofType   string `db:"id_proof_type"`
	IDProofNumber string `db:"id_proof_number"`
	IDProofImage  string `db:"id_proof_image"`
	Address       string `db:"address"`
	City          string `db:"city"`
	State         string `db:"state"`
	Country       string `db:"country"`
	Pincode       string `db:"pincode"`
	GSTNumber     string `db:"gst_number"`
	MealPlan      string `db:"meal_plan"`
	model.Metadata
}
