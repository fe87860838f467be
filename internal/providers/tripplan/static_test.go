package tripplan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStaticPlannerTitleCasesDestination(t *testing.T) {
	plan, err := StaticPlanner{}.Plan(context.Background(), Request{Destination: "kyoto, japan"})
	require.NoError(t, err)
	require.Equal(t, "Kyoto, Japan", plan.Destination)
}

func TestStaticPlannerDefaults(t *testing.T) {
	plan, err := StaticPlanner{}.Plan(context.Background(), Request{})
	require.NoError(t, err)
	require.Equal(t, "Tokyo, Japan", plan.Destination)
	require.Equal(t, "7 days", plan.Duration)
	require.Equal(t, "$2000-3000", plan.Budget)
	require.Equal(t, "2 people", plan.Travelers)
	require.Equal(t, []string{"Culture", "Food", "Technology"}, plan.Interests)
	require.NotEmpty(t, plan.Itinerary)
	require.NotNil(t, plan.AIInsights)
	require.Nil(t, plan.Blockchain)
}

func TestStaticPlannerSplitsInterests(t *testing.T) {
	plan, err := StaticPlanner{}.Plan(context.Background(), Request{
		Interests: " temples , food,, beaches ",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"temples", "food", "beaches"}, plan.Interests)
}

func TestStaticPlannerBlockchainSection(t *testing.T) {
	plan, err := StaticPlanner{}.Plan(context.Background(), Request{BlockchainIntegration: true})
	require.NoError(t, err)
	require.NotNil(t, plan.Blockchain)
	require.NotEmpty(t, plan.Blockchain.GroupPaymentBenefits)
}
