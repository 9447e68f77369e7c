package service

import (
	"context"

	"farmatrack/internal/domain"
	"farmatrack/internal/repository"
)

// DoctorInput поля врача, которые задаёт клиент при создании и обновлении
type DoctorInput struct {
	Name       string
	Type       string
	Specialty  string
	Phone      string
	Email      string
	ClinicName string
	Address    string
	City       string
	AssignedMR string
	Notes      string
	Status     string
}

func (in DoctorInput) apply(d *domain.Doctor) {
	d.Name = in.Name
	d.Type = in.Type
	d.Specialty = in.Specialty
	d.Phone = in.Phone
	d.Email = in.Email
	d.ClinicName = in.ClinicName
	d.Address = in.Address
	d.City = in.City
	d.AssignedMR = in.AssignedMR
	d.Notes = in.Notes
	d.Status = in.Status
}

// DoctorService CRUD по врачам; список по имени, затем по id
type DoctorService struct {
	crud crud[domain.Doctor]
}

func NewDoctorService(repo repository.DoctorRepository) *DoctorService {
	return &DoctorService{crud: crud[domain.Doctor]{repo: repo, entity: "Doctor", order: domain.DoctorsByNameThenID}}
}

func (s *DoctorService) List(ctx context.Context) ([]domain.Doctor, error) {
	return s.crud.list(ctx)
}

func (s *DoctorService) Get(ctx context.Context, id int64) (*domain.Doctor, error) {
	return s.crud.get(ctx, id)
}

func (s *DoctorService) Create(ctx context.Context, in DoctorInput) (*domain.Doctor, error) {
	var d domain.Doctor
	in.apply(&d)
	return s.crud.create(ctx, &d)
}

func (s *DoctorService) Update(ctx context.Context, id int64, in DoctorInput) (*domain.Doctor, error) {
	return s.crud.update(ctx, id, in.apply)
}

func (s *DoctorService) Delete(ctx context.Context, id int64) error {
	return s.crud.delete(ctx, id)
}
