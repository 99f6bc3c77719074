// Package services wires the data pipeline, session store and analytics
// into the operations the transport layer exposes. Services own logging
// and error translation; the packages underneath stay pure.
package services
