package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lawconnect/lawconnect-api/models"
)

const appointmentCollectionName = "appointments"

// AppointmentDatabase contains the methods to use with the appointment database
type AppointmentDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.Appointment, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Appointment, error)
	InsertOne(context.Context, models.Appointment) error
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) error
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
}

type appointmentDatabase struct {
	db DatabaseHelper
}

// NewAppointmentDatabase initializes a new instance of appointment database with the provided db connection
func NewAppointmentDatabase(db DatabaseHelper) AppointmentDatabase {
	return &appointmentDatabase{
		db: db,
	}
}

func (a *appointmentDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Appointment, error) {
	appointment := &models.Appointment{}
	err := a.db.Collection(appointmentCollectionName).FindOne(ctx, filter, opts...).Decode(&appointment)
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

func (a *appointmentDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Appointment, error) {
	var appointments []models.Appointment
	cur, err := a.db.Collection(appointmentCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&appointments)
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (a *appointmentDatabase) InsertOne(ctx context.Context, appointment models.Appointment) error {
	_, err := a.db.Collection(appointmentCollectionName).InsertOne(ctx, appointment)
	return err
}

func (a *appointmentDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := a.db.Collection(appointmentCollectionName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (a *appointmentDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return a.db.Collection(appointmentCollectionName).CountDocuments(ctx, filter, opts...)
}
