package routerclient

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Interface description of the Router contract, the deposit/withdrawal
// gateway for accept-listed assets. Bindings are derived from it at init
// time, no selector is hand-encoded.
const routerABIJSON = `[
  {"type":"function","name":"deposit","stateMutability":"payable","inputs":[
    {"name":"account","type":"bytes32"},
    {"name":"asset","type":"address"},
    {"name":"amount","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"withdraw","stateMutability":"nonpayable","inputs":[
    {"name":"to","type":"address"},
    {"name":"asset","type":"address"},
    {"name":"amount","type":"uint256"}],
   "outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"acceptToken","stateMutability":"nonpayable","inputs":[
    {"name":"token","type":"address"}],"outputs":[]},
  {"type":"function","name":"removeToken","stateMutability":"nonpayable","inputs":[
    {"name":"token","type":"address"}],"outputs":[]},
  {"type":"function","name":"isAccepted","stateMutability":"view","inputs":[
    {"name":"token","type":"address"}],
   "outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"owner","stateMutability":"view","inputs":[],
   "outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"pendingOwner","stateMutability":"view","inputs":[],
   "outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"transferOwnership","stateMutability":"nonpayable","inputs":[
    {"name":"newOwner","type":"address"}],"outputs":[]},
  {"type":"function","name":"claimOwnership","stateMutability":"nonpayable","inputs":[],
   "outputs":[]},
  {"type":"event","name":"Deposit","inputs":[
    {"name":"account","type":"bytes32","indexed":true},
    {"name":"asset","type":"address","indexed":true},
    {"name":"amount","type":"uint256","indexed":false}]},
  {"type":"event","name":"Withdraw","inputs":[
    {"name":"account","type":"address","indexed":true},
    {"name":"asset","type":"address","indexed":true},
    {"name":"amount","type":"uint256","indexed":false}]}
]`

var routerABI abi.ABI

func init() {
	parsed, err := abi.JSON(strings.NewReader(routerABIJSON))
	if err != nil {
		panic(err)
	}
	routerABI = parsed
}
