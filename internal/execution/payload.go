package execution

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/alanyoungcy/momentumbot/internal/chains"
	"github.com/alanyoungcy/momentumbot/internal/domain"
)

// swapSelector is the 4-byte selector stamped on EVM calldata stubs so
// downstream tooling can recognize them as swap intents. The real calldata is
// assembled by the signing collaborator.
var swapSelector = hexutil.Bytes{0x38, 0xed, 0x17, 0x39}

// nearPayload is the NEAR-style function-call transaction stub.
type nearPayload struct {
	ReceiverID string       `json:"receiverId"`
	Actions    []nearAction `json:"actions"`
}

type nearAction struct {
	Type       string         `json:"type"`
	MethodName string         `json:"methodName"`
	Args       map[string]any `json:"args"`
	Gas        string         `json:"gas"`
	Deposit    string         `json:"deposit"`
}

// evmPayload is the generic EVM call stub. To is a checksummed router
// address; Data carries only the swap selector.
type evmPayload struct {
	To    common.Address `json:"to"`
	Value string         `json:"value"`
	Data  hexutil.Bytes  `json:"data"`
	Venue string         `json:"venue"`
}

// buildPayload synthesizes the chain-appropriate unsigned transaction stub.
// The chain-name literal selects the signing model: "near" gets a
// function-call payload, everything else a generic EVM call.
func buildPayload(chain string, info chains.ChainInfo, wrapped, amount string) domain.TransactionPayload {
	if chain == "near" {
		return domain.TransactionPayload{
			Chain: chain,
			Kind:  domain.PayloadNear,
			Payload: nearPayload{
				ReceiverID: "v2.ref-finance.near",
				Actions: []nearAction{{
					Type:       "FunctionCall",
					MethodName: "swap",
					Args: map[string]any{
						"token_out":      wrapped,
						"amount_in":      amount,
						"min_amount_out": "0",
					},
					Gas:     "100000000000000",
					Deposit: "1",
				}},
			},
		}
	}

	return domain.TransactionPayload{
		Chain: chain,
		Kind:  domain.PayloadEVM,
		Payload: evmPayload{
			To:    common.HexToAddress(info.RouterAddress),
			Value: "0",
			Data:  swapSelector,
			Venue: info.Venue,
		},
	}
}
