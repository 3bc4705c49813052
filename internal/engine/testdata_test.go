package engine

const sampleResponse = `{
  "outputs": {
    "monthly": {
      "fixed": [
        {"month": 1, "E_m": 110.5}, {"month": 2, "E_m": 180.2}, {"month": 3, "E_m": 310.0},
        {"month": 4, "E_m": 420.0}, {"month": 5, "E_m": 480.0}, {"month": 6, "E_m": 490.0},
        {"month": 7, "E_m": 500.0}, {"month": 8, "E_m": 450.0}, {"month": 9, "E_m": 350.0},
        {"month": 10, "E_m": 250.0}, {"month": 11, "E_m": 120.0}, {"month": 12, "E_m": 90.0}
      ]
    },
    "totals": {"fixed": {"E_y": 4000, "H(i)_y": 1300}}
  }
}`
