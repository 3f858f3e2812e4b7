package services

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// EmailSender is the outbound notification contract. The sweep only
// depends on this; SES is one implementation.
type EmailSender interface {
	Send(ctx context.Context, toAddress, subject, body string) error
}

// SESAPI is the slice of the SES client the email service uses
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESEmailService sends notification emails through Amazon SES
type SESEmailService struct {
	Client SESAPI
	Sender string
}

// InitializeSESClient initializes the SES client
func InitializeSESClient(region string) *ses.Client {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return ses.NewFromConfig(cfg)
}

// Send delivers one plain-text email
func (es *SESEmailService) Send(ctx context.Context, toAddress, subject, body string) error {
	_, err := es.Client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(es.Sender),
		Destination: &types.Destination{
			ToAddresses: []string{toAddress},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
	})
	if err != nil {
		return err
	}
	log.Printf("Notification email sent to %s: %s", toAddress, subject)
	return nil
}
