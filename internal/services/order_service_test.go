package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"petstore_manager/internal/apperrors"
	"petstore_manager/internal/database"
	"petstore_manager/internal/models"
	"petstore_manager/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	adminActor = models.Actor{UserID: 1, Name: "Administrator", Role: string(models.RoleAdmin)}
	salesActor = models.Actor{UserID: 2, Name: "Budi", Role: string(models.RoleSales)}
	otherSales = models.Actor{UserID: 3, Name: "Sari", Role: string(models.RoleSales)}
)

// setupTestDB opens a private in-memory database per test so tests cannot
// see each other's rows.
func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func newOrderService(db *gorm.DB) OrderService {
	return NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewProductRepository(db),
	)
}

func seedCustomer(t *testing.T, db *gorm.DB, name string) *models.Customer {
	customer := &models.Customer{Name: name, Phone: "628123456789", CreatedBy: 1}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price int64) *models.Product {
	product := &models.Product{Name: name, Breed: "Persian", Price: price, IsAvailable: true}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestCreateOrderSnapshotsProductsAndDerivesAmount(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	customer := seedCustomer(t, db, "Ibu Rina")
	kitten := seedProduct(t, db, "Persian Kitten", 2500000)
	food := seedProduct(t, db, "Premium Cat Food", 150000)

	order, err := svc.CreateOrder(salesActor, CreateOrderInput{
		CustomerID:    customer.ID,
		PaymentMethod: string(models.PaymentFull),
		Lines: []OrderLineInput{
			{ProductID: kitten.ID, Quantity: 1},
			{ProductID: food.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("ORD-%d-001", time.Now().Year()), order.OrderNumber)
	assert.Equal(t, string(models.OrderPendingPayment), order.Status)
	assert.Equal(t, salesActor.Name, order.SalesPerson)
	assert.Equal(t, int64(2500000+2*150000), order.Amount)

	require.Len(t, order.Items, 2)
	assert.Equal(t, "Persian Kitten", order.Items[0].Name)
	assert.Equal(t, int64(2500000), order.Items[0].Price)

	// A later catalog price change must not affect the stored order.
	require.NoError(t, db.Model(kitten).Update("price", 9999999).Error)
	reloaded, err := svc.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2800000), reloaded.Amount)
	assert.Equal(t, int64(2500000), reloaded.Items[0].Price)
}

func TestCreateOrderSequencesNumbersWithinYear(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	customer := seedCustomer(t, db, "Pak Dedi")
	product := seedProduct(t, db, "Scratching Post", 200000)

	for i := 1; i <= 3; i++ {
		order, err := svc.CreateOrder(salesActor, CreateOrderInput{
			CustomerID:    customer.ID,
			PaymentMethod: string(models.PaymentFull),
			Lines:         []OrderLineInput{{ProductID: product.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("ORD-%d-%03d", time.Now().Year(), i), order.OrderNumber)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	customer := seedCustomer(t, db, "Ibu Rina")
	product := seedProduct(t, db, "Cat Carrier", 300000)

	_, err := svc.CreateOrder(salesActor, CreateOrderInput{
		CustomerID:    customer.ID,
		PaymentMethod: "barter",
		Lines:         []OrderLineInput{{ProductID: product.ID, Quantity: 1}},
	})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, err = svc.CreateOrder(salesActor, CreateOrderInput{
		CustomerID:    customer.ID,
		PaymentMethod: string(models.PaymentFull),
	})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, err = svc.CreateOrder(salesActor, CreateOrderInput{
		CustomerID:    9999,
		PaymentMethod: string(models.PaymentFull),
		Lines:         []OrderLineInput{{ProductID: product.ID, Quantity: 1}},
	})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCreateOrderInstallmentBuildsCeilingPlan(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	customer := seedCustomer(t, db, "Ibu Rina")
	product := seedProduct(t, db, "Maine Coon Kitten", 10000)

	order, err := svc.CreateOrder(salesActor, CreateOrderInput{
		CustomerID:        customer.ID,
		PaymentMethod:     string(models.PaymentInstallment),
		Lines:             []OrderLineInput{{ProductID: product.ID, Quantity: 1}},
		TotalInstallments: 3,
	})
	require.NoError(t, err)
	require.NotNil(t, order.Plan)

	// 10000 over 3 rounds up to 3334 per row.
	assert.Equal(t, int64(3334), order.Plan.InstallmentAmount)
	assert.Equal(t, 3, order.Plan.TotalInstallments)
	assert.Equal(t, 0, order.Plan.PaidInstallments)
	require.Len(t, order.Plan.Payments, 3)
	for i, payment := range order.Plan.Payments {
		assert.Equal(t, i+1, payment.Number)
		assert.Equal(t, string(models.PaymentPending), payment.Status)
	}

	reloaded, err := svc.GetOrder(order.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Plan)
	require.Len(t, reloaded.Plan.Payments, 3)
}

func TestUpdateOrderRequiresOwnershipOrAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	customer := seedCustomer(t, db, "Ibu Rina")
	product := seedProduct(t, db, "Cat Tree", 750000)

	order, err := svc.CreateOrder(salesActor, CreateOrderInput{
		CustomerID:    customer.ID,
		PaymentMethod: string(models.PaymentFull),
		Lines:         []OrderLineInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	status := string(models.OrderPaid)
	_, err = svc.UpdateOrder(otherSales, order.ID, UpdateOrderInput{Status: &status})
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	err = svc.DeleteOrder(otherSales, order.ID)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	updated, err := svc.UpdateOrder(salesActor, order.ID, UpdateOrderInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, string(models.OrderPaid), updated.Status)

	shipped := string(models.OrderShipped)
	updated, err = svc.UpdateOrder(adminActor, order.ID, UpdateOrderInput{Status: &shipped})
	require.NoError(t, err)
	assert.Equal(t, string(models.OrderShipped), updated.Status)
}

func TestUpdateOrderTerminalStatusOnlyAdminReopens(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	customer := seedCustomer(t, db, "Ibu Rina")
	product := seedProduct(t, db, "Litter Box", 120000)

	order, err := svc.CreateOrder(salesActor, CreateOrderInput{
		CustomerID:    customer.ID,
		PaymentMethod: string(models.PaymentFull),
		Status:        string(models.OrderCompleted),
		Lines:         []OrderLineInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// The assigned salesperson owns the order but cannot exit a terminal status.
	status := string(models.OrderShipped)
	_, err = svc.UpdateOrder(salesActor, order.ID, UpdateOrderInput{Status: &status})
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	updated, err := svc.UpdateOrder(adminActor, order.ID, UpdateOrderInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, string(models.OrderShipped), updated.Status)
}

func TestRecordInstallmentPaymentReconcilesPlan(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	customer := seedCustomer(t, db, "Ibu Rina")
	product := seedProduct(t, db, "Ragdoll Kitten", 12000)

	order, err := svc.CreateOrder(salesActor, CreateOrderInput{
		CustomerID:        customer.ID,
		PaymentMethod:     string(models.PaymentInstallment),
		Lines:             []OrderLineInput{{ProductID: product.ID, Quantity: 1}},
		TotalInstallments: 6,
	})
	require.NoError(t, err)

	plan, err := svc.RecordInstallmentPayment(salesActor, order.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, plan.PaidInstallments)
	require.NotNil(t, plan.NextDueDate)
	assert.Equal(t, plan.Payments[1].DueDate.Unix(), plan.NextDueDate.Unix())
	assert.Equal(t, string(models.PaymentPaid), plan.Payments[0].Status)
	require.NotNil(t, plan.Payments[0].PaidDate)

	// Paying the same installment twice is rejected.
	_, err = svc.RecordInstallmentPayment(salesActor, order.ID, 1)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))

	_, err = svc.RecordInstallmentPayment(salesActor, order.ID, 99)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	reloaded, err := svc.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Plan.PaidInstallments)
	assert.Equal(t, string(models.PaymentPaid), reloaded.Plan.Payments[0].Status)
}

func TestUpdateOrderSwitchToInstallmentAndBack(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	customer := seedCustomer(t, db, "Ibu Rina")
	product := seedProduct(t, db, "British Shorthair Kitten", 9000)

	order, err := svc.CreateOrder(salesActor, CreateOrderInput{
		CustomerID:    customer.ID,
		PaymentMethod: string(models.PaymentFull),
		Lines:         []OrderLineInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.Nil(t, order.Plan)

	// Switching without an installment count is a validation error.
	method := string(models.PaymentInstallment)
	_, err = svc.UpdateOrder(salesActor, order.ID, UpdateOrderInput{PaymentMethod: &method})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	n := 2
	updated, err := svc.UpdateOrder(salesActor, order.ID, UpdateOrderInput{PaymentMethod: &method, TotalInstallments: &n})
	require.NoError(t, err)
	require.NotNil(t, updated.Plan)
	assert.Equal(t, int64(4500), updated.Plan.InstallmentAmount)
	require.Len(t, updated.Plan.Payments, 2)

	// Switching away removes the plan and every payment row.
	full := string(models.PaymentFull)
	updated, err = svc.UpdateOrder(salesActor, order.ID, UpdateOrderInput{PaymentMethod: &full})
	require.NoError(t, err)
	assert.Nil(t, updated.Plan)

	var paymentCount int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&paymentCount).Error)
	assert.Zero(t, paymentCount)
}

func TestUpdateOrderRevisionPreservesPaidRows(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	customer := seedCustomer(t, db, "Ibu Rina")
	product := seedProduct(t, db, "Sphynx Kitten", 3000)

	order, err := svc.CreateOrder(salesActor, CreateOrderInput{
		CustomerID:        customer.ID,
		PaymentMethod:     string(models.PaymentInstallment),
		Lines:             []OrderLineInput{{ProductID: product.ID, Quantity: 4}},
		TotalInstallments: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12000), order.Amount)
	assert.Equal(t, int64(3000), order.Plan.InstallmentAmount)

	_, err = svc.RecordInstallmentPayment(salesActor, order.ID, 1)
	require.NoError(t, err)

	// Growing the order re-derives the amount and regenerates the unpaid tail,
	// leaving the paid row exactly as it was.
	lines := []OrderLineInput{{ProductID: product.ID, Quantity: 6}}
	updated, err := svc.UpdateOrder(salesActor, order.ID, UpdateOrderInput{Lines: &lines})
	require.NoError(t, err)
	assert.Equal(t, int64(18000), updated.Amount)

	require.NotNil(t, updated.Plan)
	assert.Equal(t, int64(4500), updated.Plan.InstallmentAmount)
	assert.Equal(t, 1, updated.Plan.PaidInstallments)
	require.Len(t, updated.Plan.Payments, 4)
	assert.Equal(t, string(models.PaymentPaid), updated.Plan.Payments[0].Status)
	assert.Equal(t, int64(3000), updated.Plan.Payments[0].Amount)
	for _, payment := range updated.Plan.Payments[1:] {
		assert.Equal(t, string(models.PaymentPending), payment.Status)
		assert.Equal(t, int64(4500), payment.Amount)
	}
}

func TestDeleteOrderRemovesAggregate(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	customer := seedCustomer(t, db, "Ibu Rina")
	product := seedProduct(t, db, "Bengal Kitten", 5000)

	order, err := svc.CreateOrder(salesActor, CreateOrderInput{
		CustomerID:        customer.ID,
		PaymentMethod:     string(models.PaymentInstallment),
		Lines:             []OrderLineInput{{ProductID: product.ID, Quantity: 1}},
		TotalInstallments: 2,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrder(salesActor, order.ID))

	_, err = svc.GetOrder(order.ID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	var itemCount, paymentCount int64
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	require.NoError(t, db.Model(&models.Payment{}).Count(&paymentCount).Error)
	assert.Zero(t, itemCount)
	assert.Zero(t, paymentCount)
}
