package producer

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"meta_indexer/internal/domain"
	"meta_indexer/internal/producer/mocks"
)

type ProducerTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	runs      *mocks.MockRunStore
	events    *mocks.MockEventStore
	publisher *mocks.MockPublisher

	service *Service
}

func (s *ProducerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.runs = mocks.NewMockRunStore(s.ctrl)
	s.events = mocks.NewMockEventStore(s.ctrl)
	s.publisher = mocks.NewMockPublisher(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.service = NewService(s.runs, s.events, s.publisher, 2, "records", logger)
}

func (s *ProducerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestProducerTestSuite(t *testing.T) {
	suite.Run(t, new(ProducerTestSuite))
}

func closedRun(id int64) *domain.HarvestRun {
	return &domain.HarvestRun{
		ID:         id,
		EndpointID: 1,
		Status:     domain.RunStatusClosed,
		UntilDate:  time.Now().UTC(),
	}
}

func eventPage(ids ...int64) []domain.EventPage {
	page := make([]domain.EventPage, len(ids))
	for i, id := range ids {
		page[i] = domain.EventPage{
			EventID:          id,
			EndpointID:       1,
			RepositoryID:     1,
			RecordIdentifier: "oai:test:rec",
			RawMetadata:      "<record/>",
			RepoCode:         "zenodo",
			HarvestURL:       "https://zenodo.org/oai2d",
			Datestamp:        time.Now().UTC(),
		}
	}
	return page
}

func (s *ProducerTestSuite) TestEnqueueRun_PagesUntilShortPage() {
	ctx := context.Background()

	s.runs.EXPECT().Get(ctx, int64(5)).Return(closedRun(5), nil)

	s.events.EXPECT().PageByRun(ctx, int64(5), 2, 0).Return(eventPage(1, 2), nil)
	s.events.EXPECT().PageByRun(ctx, int64(5), 2, 2).Return(eventPage(3), nil)

	var published []*domain.BatchMessage
	s.publisher.EXPECT().Publish(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, msg *domain.BatchMessage) error {
			published = append(published, msg)
			return nil
		},
	).Times(2)

	batches, err := s.service.EnqueueRun(ctx, 5)
	s.NoError(err)
	s.Equal(2, batches)

	s.Require().Len(published, 2)
	s.Len(published[0].Events, 2)
	s.Len(published[1].Events, 1)
	s.Equal("records", published[0].IndexName)
	s.NotEmpty(published[0].MessageID)
	s.NotEqual(published[0].MessageID, published[1].MessageID)
	s.Equal(int64(1), published[0].Events[0].EventID)
	s.Equal(int64(3), published[1].Events[0].EventID)
}

func (s *ProducerTestSuite) TestEnqueueRun_ExactMultipleStopsOnEmptyPage() {
	ctx := context.Background()

	s.runs.EXPECT().Get(ctx, int64(6)).Return(closedRun(6), nil)

	s.events.EXPECT().PageByRun(ctx, int64(6), 2, 0).Return(eventPage(1, 2), nil)
	s.events.EXPECT().PageByRun(ctx, int64(6), 2, 2).Return(nil, nil)

	s.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	batches, err := s.service.EnqueueRun(ctx, 6)
	s.NoError(err)
	s.Equal(1, batches)
}

func (s *ProducerTestSuite) TestEnqueueRun_EmptyRun() {
	ctx := context.Background()

	s.runs.EXPECT().Get(ctx, int64(7)).Return(closedRun(7), nil)
	s.events.EXPECT().PageByRun(ctx, int64(7), 2, 0).Return(nil, nil)

	batches, err := s.service.EnqueueRun(ctx, 7)
	s.NoError(err)
	s.Equal(0, batches)
}

func (s *ProducerTestSuite) TestEnqueueRun_OpenRunRejected() {
	ctx := context.Background()

	run := closedRun(8)
	run.Status = domain.RunStatusOpen
	s.runs.EXPECT().Get(ctx, int64(8)).Return(run, nil)

	batches, err := s.service.EnqueueRun(ctx, 8)
	s.ErrorIs(err, domain.ErrRunNotClosed)
	s.Equal(0, batches)
}

func (s *ProducerTestSuite) TestEnqueueRun_RunLookupError() {
	ctx := context.Background()

	s.runs.EXPECT().Get(ctx, int64(9)).Return(nil, domain.ErrNotFound)

	_, err := s.service.EnqueueRun(ctx, 9)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *ProducerTestSuite) TestEnqueueRun_PublishErrorStops() {
	ctx := context.Background()

	s.runs.EXPECT().Get(ctx, int64(10)).Return(closedRun(10), nil)
	s.events.EXPECT().PageByRun(ctx, int64(10), 2, 0).Return(eventPage(1, 2), nil)
	s.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(errors.New("channel closed"))

	batches, err := s.service.EnqueueRun(ctx, 10)
	s.Error(err)
	s.Equal(0, batches)
	s.Contains(err.Error(), "publish batch")
}
