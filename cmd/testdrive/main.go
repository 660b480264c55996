// Command testdrive books a test drive from the command line through the
// same form state machine the site uses.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"showroom_backend/internal/booking/transport"
	"showroom_backend/internal/bookingform"
	"showroom_backend/platform/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	baseURL := flag.String("url", "http://localhost:5000", "dispatch service base URL")
	firstName := flag.String("first-name", "", "first name (required)")
	lastName := flag.String("last-name", "", "last name (required)")
	email := flag.String("email", "", "email address (required)")
	phone := flag.String("phone", "", "phone number (required)")
	model := flag.String("model", transport.DefaultModel(), "preferred model")
	message := flag.String("message", "", "optional message")
	listModels := flag.Bool("models", false, "print the selectable models and exit")
	flag.Parse()

	if *listModels {
		for _, m := range transport.Models() {
			fmt.Println(m)
		}
		return
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	log := logger.New(env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	form := bookingform.New(bookingform.NewClient(*baseURL))
	form.OnChange(func(s bookingform.Snapshot) {
		if s.Phase == bookingform.PhaseIdle {
			return
		}
		log.Debug("form state", "phase", s.Phase, "submitDisabled", s.SubmitDisabled)
	})

	fields := []struct{ name, value string }{
		{bookingform.FieldFirstName, *firstName},
		{bookingform.FieldLastName, *lastName},
		{bookingform.FieldEmail, *email},
		{bookingform.FieldPhone, *phone},
		{bookingform.FieldModel, *model},
		{bookingform.FieldMessage, *message},
	}
	for _, f := range fields {
		if err := form.Set(f.name, f.value); err != nil {
			log.Error("failed to set field", "field", f.name, "error", err)
			os.Exit(2)
		}
	}
	if !transport.IsKnownModel(*model) {
		log.Warn("model is not in the catalog; sending anyway", "model", *model)
	}

	err := form.Submit(ctx)
	var verr *bookingform.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintln(os.Stderr, verr.Error())
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Error("test drive request failed", "error", err)
	}

	fmt.Println(form.Snapshot().Status)
	if err != nil {
		os.Exit(1)
	}
}
