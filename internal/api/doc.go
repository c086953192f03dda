// Package api serves the safety core to the presentation layer as JSON
// over HTTP.
//
//	GET    /health                      liveness
//	GET    /state                       session and monitor snapshot
//	PUT    /session {"enabled": bool}   switch monitoring on or off
//	POST   /session/toggle              flip monitoring
//	POST   /sos                         manual SOS
//	GET    /contacts                    list emergency contacts
//	POST   /contacts {"number": "..."}  add a contact
//	DELETE /contacts/{index}            remove a contact
//	POST   /monitors/{name}/start|stop  drive one monitor
//	POST   /heartbeat/measure           measure and wait for the reading
//	GET    /police                      police options for the current position
//	POST   /police/call|sms             launch a police intent
//	GET    /challenges                  list wellness challenges
//	POST   /challenges {"text": "..."}  add a challenge
//	POST   /challenges/{id}/toggle      flip done
//	DELETE /challenges/{id}             remove a challenge
//	GET    /notices                     recent user-facing notices
//	POST   /simulate/fall               inject a free fall into the simulated accelerometer
//	GET    /metrics                     Prometheus metrics
package api
