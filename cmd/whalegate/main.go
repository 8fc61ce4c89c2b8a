// Whalegate is an authenticated gateway in front of the Polymarket data,
// gamma and clob APIs for the copy-trading web client.
//
// It accepts a named endpoint plus parameters, enforces an origin allowlist
// and a bearer identity check, validates the parameters, calls the matching
// upstream API and returns its JSON in the shape the client expects.
//
// Usage:
//
//	# Start the gateway with defaults and environment overrides
//	whalegate run
//
//	# Start with a configuration file, reloading it on change
//	whalegate run --config /etc/whalegate/whalegate.yaml --watch
//
//	# Check a configuration file
//	whalegate validate --config whalegate.yaml
//
//	# Call an endpoint directly, without the HTTP layer
//	whalegate fetch orderbook tokenId=7132...
package main

func main() {
	Execute()
}
