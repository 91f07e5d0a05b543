package dto

import (
	"hotelpms/internal/domains/customer/model"
	"hotelpms/shared"
	"hotelpms/shared/constant"
	gDto "hotelpms/shared/dto"
	gModel "hotelpms/shared/model"
	"hotelpms/shared/timezone"
	"strings"

	"github.com/google/uuid"
)

// CustomerRequest carries a guest's details. IDProofFile is an optional data URI scan of the id proof.
type CustomerRequest struct {
	Name          string `json:"name"            validate:"required,max=255"`
	Phone         string `json:"phone"           validate:"required,max=20,phone"`
	Email         string `json:"email"           validate:"omitempty,email,max=255"`
	IDProofType   string `json:"id_proof_type"   validate:"omitempty,max=50"`
	IDProofNumber string `json:"id_proof_number" validate:"omitempty,max=100"`
	IDProofFile   string `json:"id_proof_file"   validate:"omitempty,mimetypes=image/png image/jpeg application/pdf,maxfilesize=2"`
	Address       string `json:"address"         validate:"omitempty,max=500"`
	City          string `json:"city"            validate:"omitempty,max=100"`
	State         string `json:"state"           validate:"omitempty,max=100"`
	Country       string `json:"country"         validate:"omitempty,max=100"`
	Pincode       string `json:"pincode"         validate:"omitempty,max=20"`
	GSTNumber     string `json:"gst_number"      validate:"omitempty,max=20"`
	MealPlan      string `json:"meal_plan"       validate:"omitempty,oneof=EP CP MAP AP"`
}

func (c *CustomerRequest) ToModel(phone, imageURL, user string) model.Customer {
	return model.Customer{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(c.Name),
		Phone:         phone,
		Email:         strings.ToLower(strings.TrimSpace(c.Email)),
		IDProofType:   c.IDProofType,
		IDProofNumber: c.IDProofNumber,
		IDProofImage:  imageURL,
		Address:       c.Address,
		City:          c.City,
		State:         c.State,
		Country:       c.Country,
		Pincode:       c.Pincode,
		GSTNumber:     strings.ToUpper(strings.TrimSpace(c.GSTNumber)),
		MealPlan:      c.MealPlan,
		Metadata:      gModel.NewMetadata(timezone.Now(), user),
	}
}

// ToUpdateFields replaces every editable column. The id proof image is kept unless imageURL is set.
func (c *CustomerRequest) ToUpdateFields(phone, imageURL, user string) map[string]any {
	fields := map[string]any{
		"name":            strings.TrimSpace(c.Name),
		"phone":           phone,
		"email":           strings.ToLower(strings.TrimSpace(c.Email)),
		"id_proof_type":   c.IDProofType,
		"id_proof_number": c.IDProofNumber,
		"address":         c.Address,
		"city":            c.City,
		"state":           c.State,
		"country":         c.Country,
		"pincode":         c.Pincode,
		"gst_number":      strings.ToUpper(strings.TrimSpace(c.GSTNumber)),
		"meal_plan":       c.MealPlan,
	}

	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = user

	if imageURL != constant.Empty {
		fields[model.FieldIDProofImage] = imageURL
	}

	return fields
}

type CustomerResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	IDProofType   string `json:"id_proof_type"`
	IDProofNumber string `json:"id_proof_number"`
	IDProofImage  string `json:"id_proof_image"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Country       string `json:"country"`
	Pincode       string `json:"pincode"`
	GSTNumber     string `json:"gst_number"`
	MealPlan      string `json:"meal_plan"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(model model.Customer) {
	r.ID = model.ID
	r.Name = model.Name
	r.Phone = model.Phone
	r.Email = model.Email
	r.IDProofType = model.IDProofType
	r.IDProofNumber = model.IDProofNumber
	r.IDProofImage = model.IDProofImage
	r.Address = model.Address
	r.City = model.City
	r.State = model.State
	r.Country = model.Country
	r.Pincode = model.Pincode
	r.GSTNumber = model.GSTNumber
	r.MealPlan = model.MealPlan
	r.Metadata.FromModel(model.Metadata)
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		r.Customers[i].FromModel(mod)
	}
}
