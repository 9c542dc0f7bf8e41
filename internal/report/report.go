package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/pizzalab/pizza-service/internal/models"
	"github.com/pizzalab/pizza-service/internal/repository"
)

// Reporter emails a daily summary of placed orders to staff users
type Reporter struct {
	store    repository.Store
	mailer   *Mailer
	log      *logrus.Logger
	schedule string
	cron     *cron.Cron
}

// NewReporter creates a reporter on the given cron schedule
func NewReporter(store repository.Store, mailer *Mailer, log *logrus.Logger, schedule string) *Reporter {
	return &Reporter{
		store:    store,
		mailer:   mailer,
		log:      log,
		schedule: schedule,
		cron:     cron.New(),
	}
}

// Start schedules the daily report job
func (r *Reporter) Start() error {
	if _, err := r.cron.AddFunc(r.schedule, r.run); err != nil {
		return fmt.Errorf("failed to schedule report job: %w", err)
	}
	r.cron.Start()
	r.log.Infof("Order report scheduled: %s", r.schedule)
	return nil
}

// Stop halts the schedule; running jobs finish
func (r *Reporter) Stop() {
	r.cron.Stop()
}

func (r *Reporter) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	to := time.Now().Truncate(24 * time.Hour)
	from := to.Add(-24 * time.Hour)

	orders, err := r.store.Orders().CreatedBetween(ctx, from, to)
	if err != nil {
		r.log.Errorf("Report query failed: %v", err)
		return
	}

	staff, err := r.store.Users().FindStaff(ctx)
	if err != nil {
		r.log.Errorf("Report staff lookup failed: %v", err)
		return
	}
	if len(staff) == 0 {
		r.log.Warn("No staff users to receive the order report")
		return
	}

	recipients := make([]string, 0, len(staff))
	for _, u := range staff {
		recipients = append(recipients, u.Email)
	}

	subject := fmt.Sprintf("Order summary for %s", from.Format("2006-01-02"))
	if err := r.mailer.SendOrderSummary(recipients, subject, Summarize(orders, from)); err != nil {
		r.log.Errorf("Report delivery failed: %v", err)
	}
}

// Summarize renders a plain-text order summary for the given day
func Summarize(orders []models.Order, day time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Orders placed on %s: %d\n\n", day.Format("2006-01-02"), len(orders))

	total := 0
	bySize := map[models.PizzaSize]int{}
	for _, o := range orders {
		total += o.Quantity
		bySize[o.PizzaSize] += o.Quantity
	}

	fmt.Fprintf(&b, "Total pizzas: %d\n", total)
	for _, size := range []models.PizzaSize{models.SizeSmall, models.SizeMedium, models.SizeLarge, models.SizeExtraLarge} {
		if n := bySize[size]; n > 0 {
			fmt.Fprintf(&b, "  %s: %d\n", size, n)
		}
	}
	return b.String()
}
