package notify

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type metadataResolverMock struct {
	mock.Mock
}

func (m *metadataResolverMock) Resolve(ctx context.Context, mint string) (TokenMetadata, error) {
	args := m.Called(ctx, mint)
	return args.Get(0).(TokenMetadata), args.Error(1)
}

type deliverySenderMock struct {
	mock.Mock
}

func (m *deliverySenderMock) Deliver(ctx context.Context, wallet string, msg Message) error {
	args := m.Called(ctx, wallet, msg)
	return args.Error(0)
}

func (m *deliverySenderMock) Ping(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

type walletDescriberMock struct {
	mock.Mock
}

func (m *walletDescriberMock) DescribeWallet(ctx context.Context, address string) (string, error) {
	args := m.Called(ctx, address)
	return args.String(0), args.Error(1)
}

type priceOracleMock struct {
	mock.Mock
}

func (m *priceOracleMock) SolPriceUSD(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}
