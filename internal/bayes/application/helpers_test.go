package application_test

import "github.com/chronosuggest/engine/internal/bayes/domain"

func buildTestNetwork() *domain.Network {
	return domain.BuildNetwork()
}
