package services

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"gamevault_server/apperrors"
	"gamevault_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statefulFake emulates the table: conditional puts fail on occupied
// keys, gets serve what was written
type statefulFake struct {
	fakeDynamoAPI
	items map[string]map[string]types.AttributeValue
}

func newStatefulFake() *statefulFake {
	f := &statefulFake{items: map[string]map[string]types.AttributeValue{}}
	f.putFn = func(_ context.Context, params *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
		key := itemKeyString(params.Item)
		if params.ConditionExpression != nil {
			if _, exists := f.items[key]; exists {
				return nil, &types.ConditionalCheckFailedException{}
			}
		}
		f.items[key] = params.Item
		return &dynamodb.PutItemOutput{}, nil
	}
	f.getFn = func(_ context.Context, params *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
		item := f.items[itemKeyString(params.Key)]
		return &dynamodb.GetItemOutput{Item: item}, nil
	}
	f.updateFn = func(_ context.Context, params *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
		item, exists := f.items[itemKeyString(params.Key)]
		if !exists {
			return nil, &types.ConditionalCheckFailedException{}
		}
		return &dynamodb.UpdateItemOutput{Attributes: item}, nil
	}
	return f
}

func itemKeyString(item map[string]types.AttributeValue) string {
	pk := item["partitionKey"].(*types.AttributeValueMemberS).Value
	sk := item["sortKey"].(*types.AttributeValueMemberS).Value
	return pk + "|" + sk
}

func monitorServiceForTest(t *testing.T, fake DynamoAPI) *PriceMonitorService {
	t.Helper()
	_, marketplace := marketplaceServer(t, listingsPage([]listingRow{
		{title: "Super Mario 64", href: "/game/sm64", console: "Nintendo 64", used: "$35.00", cib: "$55.00", new: "$120.00"},
	}))

	ds := &DynamoService{Client: fake}
	snapshots := &PriceSnapshotService{Dynamo: ds, RetentionDays: 30}
	games := &GameService{Dynamo: ds, Marketplace: marketplace, Snapshots: snapshots}
	return &PriceMonitorService{
		Dynamo:      ds,
		Games:       games,
		Marketplace: marketplace,
		Snapshots:   snapshots,
	}
}

func seedGame(t *testing.T, fake *statefulFake, game models.Game) {
	t.Helper()
	item, err := attributevalue.MarshalMap(game.WithKeys())
	require.NoError(t, err)
	fake.items[itemKeyString(item)] = item
}

func TestCreateMonitorDuplicateIsAlreadyExistsAndKeepsOriginal(t *testing.T) {
	fake := newStatefulFake()
	seedGame(t, fake, models.Game{
		GameID: "g1", UserID: "u1", CollectionID: "c1", CollectionType: models.CollectionTypeWishlist,
		GameName: "Super Mario 64", Email: "mario@example.com",
	})
	pms := monitorServiceForTest(t, fake)

	monitor := models.PriceMonitor{
		PriceMonitorID: "m1", UserID: "u1", GameID: "g1", CollectionID: "c1",
		DesiredCondition: models.ConditionLoose, DesiredPrice: 40,
	}

	created, err := pms.CreateMonitor(context.Background(), monitor)
	require.NoError(t, err)
	assert.Equal(t, 40.0, created.DesiredPrice)
	assert.Equal(t, "mario@example.com", created.Email)

	// Second create on the same key must conflict...
	duplicate := monitor
	duplicate.DesiredPrice = 99
	_, err = pms.CreateMonitor(context.Background(), duplicate)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	// ...and the original record is untouched
	got, err := pms.GetMonitor(context.Background(), "u1", "c1", "g1", "m1")
	require.NoError(t, err)
	assert.Equal(t, 40.0, got.DesiredPrice)
}

func TestCreateMonitorRequiresExistingGame(t *testing.T) {
	fake := newStatefulFake()
	pms := monitorServiceForTest(t, fake)

	_, err := pms.CreateMonitor(context.Background(), models.PriceMonitor{
		UserID: "u1", GameID: "ghost", CollectionID: "c1",
		DesiredCondition: models.ConditionLoose, DesiredPrice: 40,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateMonitorAppendsSnapshot(t *testing.T) {
	fake := newStatefulFake()
	seedGame(t, fake, models.Game{
		GameID: "g1", UserID: "u1", CollectionID: "c1", CollectionType: models.CollectionTypeWishlist,
		GameName: "Super Mario 64", Email: "mario@example.com",
	})
	pms := monitorServiceForTest(t, fake)

	_, err := pms.CreateMonitor(context.Background(), models.PriceMonitor{
		UserID: "u1", GameID: "g1", CollectionID: "c1",
		DesiredCondition: models.ConditionLoose, DesiredPrice: 40,
	})
	require.NoError(t, err)

	snapshots := 0
	for key := range fake.items {
		if strings.Contains(key, "[PriceSnapshot]#[g1]") {
			snapshots++
		}
	}
	assert.Equal(t, 1, snapshots)
}

// A monitor whose game was deleted has no search terms left; the
// modify persists the new target without scraping a meaningless name
func TestModifyMonitorOrphanedGameSkipsRefresh(t *testing.T) {
	fake := newStatefulFake()
	monitor := models.PriceMonitor{
		PriceMonitorID: "m1", UserID: "u1", GameID: "g1", CollectionID: "c1",
		DesiredCondition: models.ConditionLoose, DesiredPrice: 40,
	}.WithKeys()
	item, err := attributevalue.MarshalMap(monitor)
	require.NoError(t, err)
	fake.items[itemKeyString(item)] = item

	pms := monitorServiceForTest(t, fake)

	price := 25.0
	got, err := pms.ModifyMonitor(context.Background(), "u1", "c1", "g1", "m1", models.PriceMonitorUpdate{DesiredPrice: &price})
	require.NoError(t, err)
	assert.Equal(t, "m1", got.PriceMonitorID)

	for key := range fake.items {
		assert.False(t, strings.Contains(key, "[PriceSnapshot]"))
	}
}

// ListForGame must return exactly the monitors for the requested game,
// however the store splits pages
func TestListForGameFiltersAndDrainsPages(t *testing.T) {
	monitors := []models.PriceMonitor{
		{PriceMonitorID: "m1", UserID: "u1", GameID: "g1", CollectionID: "c1", DesiredCondition: models.ConditionLoose, DesiredPrice: 40},
		{PriceMonitorID: "m2", UserID: "u2", GameID: "g1", CollectionID: "c9", DesiredCondition: models.ConditionCIB, DesiredPrice: 60},
		{PriceMonitorID: "m3", UserID: "u1", GameID: "g2", CollectionID: "c1", DesiredCondition: models.ConditionLoose, DesiredPrice: 20},
	}

	var all []map[string]types.AttributeValue
	for _, monitor := range monitors {
		item, err := attributevalue.MarshalMap(monitor.WithKeys())
		require.NoError(t, err)
		all = append(all, item)
	}

	for _, pageSize := range []int{1, 2, 10} {
		fake := &fakeDynamoAPI{
			queryFn: func(_ context.Context, params *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
				require.Equal(t, models.ItemTypeIndex, *params.IndexName)
				require.Contains(t, *params.FilterExpression, "contains(sortKey")
				gameSegment := params.ExpressionAttributeValues[":gameSegment"].(*types.AttributeValueMemberS).Value

				// Emulate the server-side filter, then page
				var matched []map[string]types.AttributeValue
				for _, item := range all {
					sk := item["sortKey"].(*types.AttributeValueMemberS).Value
					if strings.Contains(sk, gameSegment) {
						matched = append(matched, item)
					}
				}

				start := 0
				if params.ExclusiveStartKey != nil {
					cursor := params.ExclusiveStartKey["cursor"].(*types.AttributeValueMemberN)
					start, _ = strconv.Atoi(cursor.Value)
				}
				end := start + pageSize
				if end > len(matched) {
					end = len(matched)
				}

				output := &dynamodb.QueryOutput{Items: matched[start:end]}
				if end < len(matched) {
					output.LastEvaluatedKey = map[string]types.AttributeValue{
						"cursor": &types.AttributeValueMemberN{Value: strconv.Itoa(end)},
					}
				}
				return output, nil
			},
		}

		pms := &PriceMonitorService{Dynamo: &DynamoService{Client: fake}}
		got, err := pms.ListForGame(context.Background(), "g1")
		require.NoError(t, err, "pageSize=%d", pageSize)
		require.Len(t, got, 2, "pageSize=%d", pageSize)

		ids := []string{got[0].PriceMonitorID, got[1].PriceMonitorID}
		assert.ElementsMatch(t, []string{"m1", "m2"}, ids)
	}
}

func TestDeleteMonitorReturnsPriorValue(t *testing.T) {
	monitor := models.PriceMonitor{
		PriceMonitorID: "m1", UserID: "u1", GameID: "g1", CollectionID: "c1",
		DesiredCondition: models.ConditionLoose, DesiredPrice: 40,
	}.WithKeys()
	item, err := attributevalue.MarshalMap(monitor)
	require.NoError(t, err)

	fake := &fakeDynamoAPI{
		deleteFn: func(_ context.Context, params *dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error) {
			require.Equal(t, types.ReturnValueAllOld, params.ReturnValues)
			return &dynamodb.DeleteItemOutput{Attributes: item}, nil
		},
	}

	pms := &PriceMonitorService{Dynamo: &DynamoService{Client: fake}}
	prior, err := pms.DeleteMonitor(context.Background(), "u1", "c1", "g1", "m1")
	require.NoError(t, err)
	assert.Equal(t, "m1", prior.PriceMonitorID)
	assert.Equal(t, 40.0, prior.DesiredPrice)
}
