package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"birthday-song-service/internal/model"
	"birthday-song-service/internal/repository"
	"birthday-song-service/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createOrder(t *testing.T, repo repository.OrderRepository, id, style string, status model.OrderStatus, createdAt time.Time) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &model.Order{
		ID:                id,
		RecipientName:     "Name " + id,
		PersonalityTraits: []string{"kind"},
		SelectedStyle:     style,
		Status:            status,
		CreatedAt:         createdAt,
	}))
}

func TestOrderRepository_CreateFindUpdate(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewOrderRepository(db)
	ctx := context.Background()

	createOrder(t, repo, "o1", "", model.StatusCreated, time.Now())

	order, err := repo.FindByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, []string{"kind"}, order.PersonalityTraits)
	assert.Equal(t, model.StatusCreated, order.Status)

	err = repo.Update(ctx, nil, "o1", map[string]interface{}{
		"email":          "a@b.co",
		"selected_style": "pop",
	})
	require.NoError(t, err)

	order, err = repo.FindByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", order.Email)
	assert.Equal(t, "pop", order.SelectedStyle)
	assert.Equal(t, "Name o1", order.RecipientName)

	err = repo.Update(ctx, nil, "missing", map[string]interface{}{"email": "x@y.z"})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	_, err = repo.FindByID(ctx, "missing")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestOrderRepository_MarkPaid(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewOrderRepository(db)
	ctx := context.Background()

	createOrder(t, repo, "o1", "rock", model.StatusSongReady, time.Now())

	order, err := repo.MarkPaid(ctx, db, "o1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, order.Status)
	assert.Equal(t, "rock", order.SelectedStyle)

	_, err = repo.MarkPaid(ctx, db, "missing")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	_, err = repo.MarkPaid(ctx, db, "o1")
	assert.True(t, errors.Is(err, repository.ErrOrderNotPayable))

	createOrder(t, repo, "o2", "pop", model.StatusCompleted, time.Now())
	order, err = repo.MarkPaid(ctx, db, "o2")
	assert.True(t, errors.Is(err, repository.ErrOrderNotPayable))
	assert.Equal(t, model.StatusCompleted, order.Status)

	createOrder(t, repo, "o3", "", model.StatusCancelled, time.Now())
	_, err = repo.MarkPaid(ctx, db, "o3")
	assert.True(t, errors.Is(err, repository.ErrOrderNotPayable))
}

func TestOrderRepository_Stats(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewOrderRepository(db)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	createOrder(t, repo, "o1", "pop", model.StatusPaid, base)
	createOrder(t, repo, "o2", "pop", model.StatusCreated, base.Add(time.Hour))
	createOrder(t, repo, "o3", "rock", model.StatusCompleted, base.Add(2*time.Hour))
	createOrder(t, repo, "o4", "", model.StatusCreated, base.Add(3*time.Hour))

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	done, err := repo.CountByStatus(ctx, []model.OrderStatus{model.StatusPaid, model.StatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, int64(2), done)

	styles, err := repo.TopStyles(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []model.StyleCount{{Style: "pop", Count: 2}, {Style: "rock", Count: 1}}, styles)

	recent, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "o4", recent[0].ID)
	assert.Equal(t, "o3", recent[1].ID)
}

func selectedIDs(lyrics []*model.LyricsVariation) []string {
	var ids []string
	for _, l := range lyrics {
		if l.Selected {
			ids = append(ids, l.ID)
		}
	}
	return ids
}

func TestLyricsRepository_SelectIsExclusive(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewLyricsRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateMany(ctx, []*model.LyricsVariation{
		{ID: "l1", OrderID: "o1", Model: "m", Content: "a"},
		{ID: "l2", OrderID: "o1", Model: "m", Content: "b"},
		{ID: "l3", OrderID: "o1", Model: "m", Content: "c"},
		{ID: "x1", OrderID: "o2", Model: "m", Content: "d", Selected: true},
	}))

	for _, id := range []string{"l2", "l1", "l3", "l3"} {
		err := db.Transaction(func(tx *gorm.DB) error {
			return repo.Select(ctx, tx, "o1", id)
		})
		require.NoError(t, err)

		all, err := repo.ListByOrder(ctx, "o1")
		require.NoError(t, err)
		assert.Equal(t, []string{id}, selectedIDs(all))
	}

	other, err := repo.ListByOrder(ctx, "o2")
	require.NoError(t, err)
	assert.Equal(t, []string{"x1"}, selectedIDs(other))

	err = repo.Select(ctx, db, "o1", "x1")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	selected, err := repo.FindSelected(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "l3", selected.ID)
}

func TestLyricsRepository_EditKeepsOriginal(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewLyricsRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateMany(ctx, []*model.LyricsVariation{
		{ID: "l1", OrderID: "o1", Model: "m", Content: "original"},
	}))

	require.NoError(t, repo.UpdateEditedContent(ctx, "o1", "l1", "edited"))

	l, err := repo.FindByID(ctx, "o1", "l1")
	require.NoError(t, err)
	assert.Equal(t, "original", l.Content)
	require.NotNil(t, l.EditedContent)
	assert.Equal(t, "edited", *l.EditedContent)

	err = repo.UpdateEditedContent(ctx, "o2", "l1", "nope")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestSongRepository_SelectAndOrder(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewSongRepository(db)
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, repo.CreateMany(ctx, []*model.SongVariation{
		{ID: "s1", OrderID: "o1", AudioURL: "a1", CreatedAt: base},
		{ID: "s2", OrderID: "o1", AudioURL: "a2", CreatedAt: base.Add(time.Second)},
	}))

	_, err := repo.FindSelected(ctx, "o1")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	require.NoError(t, repo.Select(ctx, db, "o1", "s2"))
	require.NoError(t, repo.Select(ctx, db, "o1", "s1"))

	songs, err := repo.ListByOrder(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, "s1", songs[0].ID)
	assert.True(t, songs[0].Selected)
	assert.False(t, songs[1].Selected)
}

func TestVideoRepository_UpsertAndComplete(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewVideoRepository(db)
	ctx := context.Background()

	clip := &model.VideoClip{ID: "v1", OrderID: "o1", SongID: "s1", Status: model.VideoProcessing, ReadyAt: time.Now()}
	require.NoError(t, repo.Upsert(ctx, clip))
	require.NoError(t, repo.MarkCompleted(ctx, "v1", "https://cdn/v1.mp4"))

	got, err := repo.FindByOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, model.VideoCompleted, got.Status)
	assert.Equal(t, "https://cdn/v1.mp4", got.VideoURL)

	restart := &model.VideoClip{ID: "v1", OrderID: "o1", SongID: "s2", Status: model.VideoProcessing, ReadyAt: time.Now()}
	require.NoError(t, repo.Upsert(ctx, restart))

	got, err = repo.FindByOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, model.VideoProcessing, got.Status)
	assert.Equal(t, "s2", got.SongID)
	assert.Empty(t, got.VideoURL)
}

func TestPaymentAndWebhookRepositories(t *testing.T) {
	db := testutil.NewDB(t)
	payments := repository.NewPaymentRepository(db)
	events := repository.NewWebhookEventRepository(db)
	ctx := context.Background()

	total, err := payments.TotalRevenueCents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := payments.Create(ctx, tx, &model.Payment{
			PaymentIntentID: "pi_1", SessionID: "cs_1", OrderID: "o1", Tier: "basic", AmountCents: 999, Currency: "usd",
		}); err != nil {
			return err
		}
		if err := payments.Create(ctx, tx, &model.Payment{
			PaymentIntentID: "pi_2", SessionID: "cs_2", OrderID: "o2", Tier: "deluxe", AmountCents: 2999, Currency: "usd",
		}); err != nil {
			return err
		}
		return events.MarkProcessed(ctx, tx, "cs_1", "checkout.session.completed")
	})
	require.NoError(t, err)

	total, err = payments.TotalRevenueCents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3998), total)

	exists, err := events.Exists(ctx, "cs_1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = events.Exists(ctx, "cs_3")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestShareEventRepository(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewShareEventRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.ShareEvent{OrderID: "o1", IP: "1.2.3.4", HasAudio: true}))
	require.NoError(t, repo.Create(ctx, &model.ShareEvent{OrderID: "o1", IP: "1.2.3.4"}))

	count, err := repo.CountByOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
