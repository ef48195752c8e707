package utils

import (
	"context"
	"fmt"

	appcfg "github.com/jatenner/Snap2Healthmain-sub005/config"
	"github.com/jatenner/Snap2Healthmain-sub005/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"
)

var sesClient *ses.Client

// InitSES must be called once at startup. With no sender address configured
// email sending is disabled and send calls error out.
func InitSES() {
	log := logger.L()

	if appcfg.App.SESEmail == "" {
		log.Info("SES_EMAIL not set, account emails disabled")
		return
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(appcfg.App.AWSRegion))
	if err != nil {
		log.Fatal("AWS config load failed for SES", zap.Error(err))
	}
	sesClient = ses.NewFromConfig(cfg)
}

func sendEmail(to string, subject string, body string) error {
	if sesClient == nil {
		return fmt.Errorf("email sending is not configured")
	}

	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(appcfg.App.SESEmail),
	}

	if _, err := sesClient.SendEmail(context.TODO(), input); err != nil {
		logger.L().Error("SES send failed", zap.Error(err))
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}

func SendMFAEmail(to string, code string) error {
	subject := "Your MFA Code"
	body := fmt.Sprintf("Your MFA verification code is: %s\n\nUse this to complete your login.", code)
	return sendEmail(to, subject, body)
}

func SendResetEmail(to string, token string) error {
	subject := "Password Reset Code"
	body := fmt.Sprintf("Your password reset code is: %s\n\nUse this in the app to set a new password.", token)
	return sendEmail(to, subject, body)
}
