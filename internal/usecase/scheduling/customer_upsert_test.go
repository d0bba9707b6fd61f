package scheduling

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerNameFirstWriteWins(t *testing.T) {
	repo := seedRepo()
	uc := newCreateUC(repo, fakeSettings{})

	first := baseInput(futureDay(10, 0))
	first.CustomerName = "Lola"
	_, err := uc.Execute(context.Background(), first)
	require.NoError(t, err)

	// segunda reserva do mesmo telefone com outra grafia não renomeia
	second := baseInput(futureDay(14, 0))
	second.CustomerName = "Dolores M."
	_, err = uc.Execute(context.Background(), second)
	require.NoError(t, err)

	require.Len(t, repo.customers, 1)
	assert.Equal(t, "Lola", repo.customers[0].Name)
}

func TestCustomerNameFilledWhenFirstBookingWasAnonymous(t *testing.T) {
	repo := seedRepo()
	uc := newCreateUC(repo, fakeSettings{})

	first := baseInput(futureDay(10, 0))
	first.CustomerName = ""
	_, err := uc.Execute(context.Background(), first)
	require.NoError(t, err)

	second := baseInput(futureDay(14, 0))
	second.CustomerName = "Lola"
	_, err = uc.Execute(context.Background(), second)
	require.NoError(t, err)

	require.Len(t, repo.customers, 1)
	assert.Equal(t, "Lola", repo.customers[0].Name)
}

// Duas reservas simultâneas de um telefone ainda sem cadastro: ambas devem
// completar e compartilhar um único cliente — o upsert perdedor relê a linha
// do vencedor em vez de falhar a reserva.
func TestConcurrentBookingsSamePhoneShareOneCustomer(t *testing.T) {
	repo := seedRepo()
	uc := newCreateUC(repo, fakeSettings{})

	slots := []int{10, 14}
	errs := make([]error, len(slots))

	var wg sync.WaitGroup
	for i, hour := range slots {
		wg.Add(1)
		go func(i, hour int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), baseInput(futureDay(hour, 0)))
		}(i, hour)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	require.Len(t, repo.customers, 1)

	customerID := repo.customers[0].ID
	for _, ap := range repo.appointments {
		assert.Equal(t, customerID, ap.CustomerID)
	}
}
