package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/piyukr2/Bed-Manager/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"go.uber.org/zap"
)

// JobPublisher pushes newly created cleaning jobs to an external housekeeping
// queue. Publishing is best-effort; the bed transition never waits on it.
type JobPublisher interface {
	PublishJob(ctx context.Context, job *domain.CleaningJob) error
}

type SQSPublisher struct {
	client   *sqs.Client
	queueURL string
	logger   *zap.Logger
}

func NewSQSPublisher(client *sqs.Client, queueURL string, logger *zap.Logger) *SQSPublisher {
	return &SQSPublisher{client: client, queueURL: queueURL, logger: logger}
}

func (p *SQSPublisher) PublishJob(ctx context.Context, job *domain.CleaningJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("SQSPublisher.PublishJob (marshal): %w", err)
	}

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("SQSPublisher.PublishJob (send): %w", err)
	}
	p.logger.Debug("cleaning job published to queue",
		zap.Int("job_id", job.ID),
		zap.String("bed_number", job.BedNumber),
	)
	return nil
}
