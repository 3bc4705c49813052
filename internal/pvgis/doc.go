// Package pvgis is a client for the PVGIS photovoltaic yield service
// (PVcalc endpoint) operated by the EU Joint Research Centre.
//
// Requests are routed through the relay package. The response keeps the
// order of the mounting-type keys in outputs.totals so callers can pick the
// first one the service returned.
package pvgis
