package fabricclient

import (
	"os"
	"path/filepath"

	"github.com/hyperledger/fabric-sdk-go/pkg/core/config"
	"github.com/hyperledger/fabric-sdk-go/pkg/gateway"
	"github.com/pkg/errors"
)

// Client wraps a gateway connection to the letters of credit chaincode for
// one enrolled identity. The chaincode hosts two named contracts; call them
// through SubmitTransaction/EvaluateTransaction with qualified names, e.g.
// "org.locnet.letterofcredit:Apply".
type Client struct {
	gw       *gateway.Gateway
	network  *gateway.Network
	contract *gateway.Contract
}

// NewClient connects to the network as the identity stored under label in
// the filesystem wallet, enrolling it from certPath/keyPath on first use.
func NewClient(configPath, channelName, chaincodeName, mspID, label, certPath, keyPath string) (*Client, error) {
	wallet, err := gateway.NewFileSystemWallet("wallet")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create wallet")
	}

	if !wallet.Exists(label) {
		if err := populateWallet(wallet, label, mspID, certPath, keyPath); err != nil {
			return nil, errors.Wrapf(err, "failed to store identity %q in wallet", label)
		}
	}

	gw, err := gateway.Connect(
		gateway.WithConfig(config.FromFile(filepath.Clean(configPath))),
		gateway.WithIdentity(wallet, label),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to gateway")
	}

	network, err := gw.GetNetwork(channelName)
	if err != nil {
		gw.Close()
		return nil, errors.Wrapf(err, "failed to get network %q", channelName)
	}

	return &Client{
		gw:       gw,
		network:  network,
		contract: network.GetContract(chaincodeName),
	}, nil
}

// SubmitTransaction sends an invoke through the ordering service.
func (c *Client) SubmitTransaction(name string, args ...string) ([]byte, error) {
	return c.contract.SubmitTransaction(name, args...)
}

// EvaluateTransaction runs a query against a single peer.
func (c *Client) EvaluateTransaction(name string, args ...string) ([]byte, error) {
	return c.contract.EvaluateTransaction(name, args...)
}

func (c *Client) Close() {
	c.gw.Close()
}

func populateWallet(wallet *gateway.Wallet, label, mspID, certPath, keyPath string) error {
	cert, err := os.ReadFile(filepath.Clean(certPath))
	if err != nil {
		return err
	}

	key, err := os.ReadFile(filepath.Clean(keyPath))
	if err != nil {
		return err
	}

	return wallet.Put(label, gateway.NewX509Identity(mspID, string(cert), string(key)))
}
