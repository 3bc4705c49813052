package pvgis

// sampleResponse is a trimmed PVcalc answer for a 4 kWp fixed system.
const sampleResponse = `{
  "inputs": {"location": {"latitude": 52.52, "longitude": 13.405}},
  "outputs": {
    "monthly": {
      "fixed": [
        {"month": 1, "E_d": 2.1, "E_m": 110.5, "H(i)_m": 35.2},
        {"month": 2, "E_d": 4.0, "E_m": 180.2, "H(i)_m": 58.1},
        {"month": 3, "E_m": 310.0},
        {"month": 4, "E_m": 420.0},
        {"month": 5, "E_m": 480.0},
        {"month": 6, "E_m": 490.0},
        {"month": 7, "E_m": 500.0},
        {"month": 8, "E_m": 450.0},
        {"month": 9, "E_m": 350.0},
        {"month": 10, "E_m": 250.0},
        {"month": 11, "E_m": 120.0},
        {"month": 12, "E_m": 90.0}
      ]
    },
    "totals": {
      "fixed": {"E_d": 10.9, "E_m": 333.3, "E_y": 4000, "H(i)_y": 1300, "SD_y": 150.2, "l_total": -22.1}
    }
  },
  "meta": {}
}`
