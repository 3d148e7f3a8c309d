package safeclient

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Interface description of the multisig account contract, limited to the
// surface the bridge consumes. The bindings below are derived from it at
// init time, no selector is hand-encoded.
const safeABIJSON = `[
  {"type":"function","name":"setup","stateMutability":"nonpayable","inputs":[
    {"name":"_owners","type":"address[]"},
    {"name":"_threshold","type":"uint256"},
    {"name":"to","type":"address"},
    {"name":"data","type":"bytes"},
    {"name":"fallbackHandler","type":"address"},
    {"name":"paymentToken","type":"address"},
    {"name":"payment","type":"uint256"},
    {"name":"paymentReceiver","type":"address"}],"outputs":[]},
  {"type":"function","name":"nonce","stateMutability":"view","inputs":[],
   "outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"getOwners","stateMutability":"view","inputs":[],
   "outputs":[{"name":"","type":"address[]"}]},
  {"type":"function","name":"getThreshold","stateMutability":"view","inputs":[],
   "outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"encodeTransactionData","stateMutability":"view","inputs":[
    {"name":"to","type":"address"},
    {"name":"value","type":"uint256"},
    {"name":"data","type":"bytes"},
    {"name":"operation","type":"uint8"},
    {"name":"safeTxGas","type":"uint256"},
    {"name":"baseGas","type":"uint256"},
    {"name":"gasPrice","type":"uint256"},
    {"name":"gasToken","type":"address"},
    {"name":"refundReceiver","type":"address"},
    {"name":"_nonce","type":"uint256"}],
   "outputs":[{"name":"","type":"bytes"}]},
  {"type":"function","name":"getTransactionHash","stateMutability":"view","inputs":[
    {"name":"to","type":"address"},
    {"name":"value","type":"uint256"},
    {"name":"data","type":"bytes"},
    {"name":"operation","type":"uint8"},
    {"name":"safeTxGas","type":"uint256"},
    {"name":"baseGas","type":"uint256"},
    {"name":"gasPrice","type":"uint256"},
    {"name":"gasToken","type":"address"},
    {"name":"refundReceiver","type":"address"},
    {"name":"_nonce","type":"uint256"}],
   "outputs":[{"name":"","type":"bytes32"}]},
  {"type":"function","name":"execTransaction","stateMutability":"payable","inputs":[
    {"name":"to","type":"address"},
    {"name":"value","type":"uint256"},
    {"name":"data","type":"bytes"},
    {"name":"operation","type":"uint8"},
    {"name":"safeTxGas","type":"uint256"},
    {"name":"baseGas","type":"uint256"},
    {"name":"gasPrice","type":"uint256"},
    {"name":"gasToken","type":"address"},
    {"name":"refundReceiver","type":"address"},
    {"name":"signatures","type":"bytes"}],
   "outputs":[{"name":"success","type":"bool"}]},
  {"type":"event","name":"ExecutionSuccess","inputs":[
    {"name":"txHash","type":"bytes32","indexed":false},
    {"name":"payment","type":"uint256","indexed":false}]},
  {"type":"event","name":"ExecutionFailure","inputs":[
    {"name":"txHash","type":"bytes32","indexed":false},
    {"name":"payment","type":"uint256","indexed":false}]}
]`

var safeABI abi.ABI

func init() {
	parsed, err := abi.JSON(strings.NewReader(safeABIJSON))
	if err != nil {
		panic(err)
	}
	safeABI = parsed
}
