package services

import (
	"context"
	"strings"
	"testing"

	"gamevault_server/apperrors"
	"gamevault_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gameServiceForTest(t *testing.T, fake DynamoAPI) *GameService {
	t.Helper()
	_, marketplace := marketplaceServer(t, listingsPage([]listingRow{
		{title: "Super Mario 64", href: "/game/sm64", console: "Nintendo 64", used: "$35.00", cib: "$55.00", new: "$120.00"},
	}))

	ds := &DynamoService{Client: fake}
	return &GameService{
		Dynamo:      ds,
		Marketplace: marketplace,
		Snapshots:   &PriceSnapshotService{Dynamo: ds, RetentionDays: 30},
	}
}

func desiredPrice(v float64) *float64 { return &v }

// A game with a price target is never persisted without price data;
// the create scrapes and appends a snapshot before the write
func TestCreateGameWithPriceTargetEmbedsPriceData(t *testing.T) {
	fake := newStatefulFake()
	gs := gameServiceForTest(t, fake)

	created, err := gs.CreateGame(context.Background(), models.Game{
		UserID: "u1", CollectionID: "c1", CollectionType: models.CollectionTypeWishlist,
		GameName: "Super Mario 64", Email: "mario@example.com", Console: "Nintendo 64",
		DesiredCondition: models.ConditionLoose, DesiredPrice: desiredPrice(40),
	})
	require.NoError(t, err)

	require.NotNil(t, created.PriceData)
	assert.True(t, created.PriceData.DesiredPriceExists)
	assert.Equal(t, 35.0, created.PriceData.LowestPrice)
	assert.NotEmpty(t, created.GameID)

	snapshots := 0
	for key := range fake.items {
		if strings.Contains(key, "[PriceSnapshot]") {
			snapshots++
		}
	}
	assert.Equal(t, 1, snapshots)
}

func TestCreateGameWithoutPriceTargetSkipsMarketplace(t *testing.T) {
	fake := newStatefulFake()
	gs := gameServiceForTest(t, fake)

	created, err := gs.CreateGame(context.Background(), models.Game{
		UserID: "u1", CollectionID: "c1", CollectionType: models.CollectionTypeOwned,
		GameName: "Tetris", Email: "mario@example.com",
	})
	require.NoError(t, err)
	assert.Nil(t, created.PriceData)

	for key := range fake.items {
		assert.False(t, strings.Contains(key, "[PriceSnapshot]"))
	}
}

func TestCreateGameRejectsInvalidCondition(t *testing.T) {
	gs := gameServiceForTest(t, newStatefulFake())

	_, err := gs.CreateGame(context.Background(), models.Game{
		UserID: "u1", CollectionID: "c1", CollectionType: models.CollectionTypeWishlist,
		GameName: "Tetris", DesiredCondition: "mint", DesiredPrice: desiredPrice(10),
	})
	assert.Error(t, err)
}

// A price target without a condition grade has no column to scrape,
// so the create is rejected instead of persisting an untracked game
func TestCreateGameRejectsPriceTargetWithoutCondition(t *testing.T) {
	fake := newStatefulFake()
	gs := gameServiceForTest(t, fake)

	_, err := gs.CreateGame(context.Background(), models.Game{
		UserID: "u1", CollectionID: "c1", CollectionType: models.CollectionTypeWishlist,
		GameName: "Super Mario 64", Email: "mario@example.com",
		DesiredPrice: desiredPrice(40),
	})
	require.Error(t, err)
	assert.Empty(t, fake.items)
}

func TestCreateGameDuplicateIsAlreadyExists(t *testing.T) {
	fake := newStatefulFake()
	gs := gameServiceForTest(t, fake)

	game := models.Game{
		GameID: "g1", UserID: "u1", CollectionID: "c1", CollectionType: models.CollectionTypeOwned,
		GameName: "Tetris", Email: "mario@example.com",
	}

	_, err := gs.CreateGame(context.Background(), game)
	require.NoError(t, err)

	_, err = gs.CreateGame(context.Background(), game)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestGetGameDerivesCollectionTypeFromDiscriminator(t *testing.T) {
	fake := newStatefulFake()
	seedGame(t, fake, models.Game{
		GameID: "g1", UserID: "u1", CollectionID: "c1", CollectionType: models.CollectionTypeWishlist,
		GameName: "Super Mario 64", Email: "mario@example.com",
	})
	gs := gameServiceForTest(t, fake)

	got, err := gs.GetGame(context.Background(), "u1", "c1", "g1")
	require.NoError(t, err)
	assert.Equal(t, models.CollectionTypeWishlist, got.CollectionType)
	assert.Equal(t, "Super Mario 64", got.GameName)
}

func TestGetGameMissingIsNotFound(t *testing.T) {
	gs := gameServiceForTest(t, newStatefulFake())

	_, err := gs.GetGame(context.Background(), "u1", "c1", "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestModifyGameRejectsEmptyUpdate(t *testing.T) {
	gs := gameServiceForTest(t, newStatefulFake())

	_, err := gs.ModifyGame(context.Background(), "u1", "c1", "g1", models.GameUpdate{})
	assert.Error(t, err)
}

// Changing the condition grade of a tracked game invalidates its
// stored price data, so the modify must re-scrape for the new grade
func TestModifyGameConditionChangeRefreshesPriceData(t *testing.T) {
	fake := newStatefulFake()
	seedGame(t, fake, models.Game{
		GameID: "g1", UserID: "u1", CollectionID: "c1", CollectionType: models.CollectionTypeWishlist,
		GameName: "Super Mario 64", Email: "mario@example.com", Console: "Nintendo 64",
		DesiredCondition: models.ConditionLoose, DesiredPrice: desiredPrice(40),
	})
	gs := gameServiceForTest(t, fake)

	condition := models.ConditionCIB
	_, err := gs.ModifyGame(context.Background(), "u1", "c1", "g1", models.GameUpdate{DesiredCondition: &condition})
	require.NoError(t, err)

	snapshots := 0
	for key := range fake.items {
		if strings.Contains(key, "[PriceSnapshotCondition]#[cib]") {
			snapshots++
		}
	}
	assert.Equal(t, 1, snapshots)
}

func TestModifyGameUntrackedNameChangeSkipsMarketplace(t *testing.T) {
	fake := newStatefulFake()
	seedGame(t, fake, models.Game{
		GameID: "g1", UserID: "u1", CollectionID: "c1", CollectionType: models.CollectionTypeOwned,
		GameName: "Tetris", Email: "mario@example.com",
	})
	gs := gameServiceForTest(t, fake)

	name := "Tetris DX"
	_, err := gs.ModifyGame(context.Background(), "u1", "c1", "g1", models.GameUpdate{GameName: &name})
	require.NoError(t, err)

	for key := range fake.items {
		assert.False(t, strings.Contains(key, "[PriceSnapshot]"))
	}
}

func TestModifyGameMissingIsNotFound(t *testing.T) {
	gs := gameServiceForTest(t, newStatefulFake())

	name := "New Name"
	_, err := gs.ModifyGame(context.Background(), "u1", "c1", "ghost", models.GameUpdate{GameName: &name})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
