package txn

import (
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

func testNetworkParams() types.SuggestedParams {
	genesisHash := make([]byte, 32)
	for index := range genesisHash {
		genesisHash[index] = byte(index + 1)
	}

	return types.SuggestedParams{
		Fee:             1000,
		FlatFee:         true,
		MinFee:          1000,
		FirstRoundValid: 100,
		LastRoundValid:  1100,
		GenesisID:       "testnet-v1.0",
		GenesisHash:     genesisHash,
	}
}

func mustPayment(sender crypto.Account, receiver crypto.Account, amount uint64) UnsignedTransaction {
	built, err := BuildPaymentTx(PaymentTxParams{
		Sender:   sender.Address.String(),
		Receiver: receiver.Address.String(),
		Amount:   amount,
	}, testNetworkParams())
	if err != nil {
		panic(err)
	}
	return built
}
