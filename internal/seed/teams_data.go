package seed

import "github.com/Skotchmaster/nba_api/internal/models"

// nbaTeams lists the 30 franchises with arena coordinates.
var nbaTeams = []models.Team{
	{Name: "Boston Celtics", City: "Boston", State: "Massachusetts", Stadium: "TD Garden", Latitude: 42.3601, Longitude: -71.0589, Conference: "East", Division: "Atlantic"},
	{Name: "Brooklyn Nets", City: "Brooklyn", State: "New York", Stadium: "Barclays Center", Latitude: 40.6782, Longitude: -73.9442, Conference: "East", Division: "Atlantic"},
	{Name: "New York Knicks", City: "New York", State: "New York", Stadium: "Madison Square Garden", Latitude: 40.7128, Longitude: -74.006, Conference: "East", Division: "Atlantic"},
	{Name: "Philadelphia 76ers", City: "Philadelphia", State: "Pennsylvania", Stadium: "Wells Fargo Center", Latitude: 39.9526, Longitude: -75.1652, Conference: "East", Division: "Atlantic"},
	{Name: "Toronto Raptors", City: "Toronto", State: "Ontario", Stadium: "Scotiabank Arena", Latitude: 43.6532, Longitude: -79.3832, Conference: "East", Division: "Atlantic"},
	{Name: "Chicago Bulls", City: "Chicago", State: "Illinois", Stadium: "United Center", Latitude: 41.8781, Longitude: -87.6298, Conference: "East", Division: "Central"},
	{Name: "Cleveland Cavaliers", City: "Cleveland", State: "Ohio", Stadium: "Rocket Mortgage FieldHouse", Latitude: 41.4993, Longitude: -81.6944, Conference: "East", Division: "Central"},
	{Name: "Detroit Pistons", City: "Detroit", State: "Michigan", Stadium: "Little Caesars Arena", Latitude: 42.3314, Longitude: -83.0458, Conference: "East", Division: "Central"},
	{Name: "Indiana Pacers", City: "Indianapolis", State: "Indiana", Stadium: "Gainbridge Fieldhouse", Latitude: 39.7684, Longitude: -86.1581, Conference: "East", Division: "Central"},
	{Name: "Milwaukee Bucks", City: "Milwaukee", State: "Wisconsin", Stadium: "Fiserv Forum", Latitude: 43.0389, Longitude: -87.9065, Conference: "East", Division: "Central"},
	{Name: "Atlanta Hawks", City: "Atlanta", State: "Georgia", Stadium: "State Farm Arena", Latitude: 33.749, Longitude: -84.388, Conference: "East", Division: "Southeast"},
	{Name: "Charlotte Hornets", City: "Charlotte", State: "North Carolina", Stadium: "Spectrum Center", Latitude: 35.2271, Longitude: -80.8431, Conference: "East", Division: "Southeast"},
	{Name: "Miami Heat", City: "Miami", State: "Florida", Stadium: "Kaseya Center", Latitude: 25.7617, Longitude: -80.1918, Conference: "East", Division: "Southeast"},
	{Name: "Orlando Magic", City: "Orlando", State: "Florida", Stadium: "Amway Center", Latitude: 28.5383, Longitude: -81.3792, Conference: "East", Division: "Southeast"},
	{Name: "Washington Wizards", City: "Washington", State: "D.C.", Stadium: "Capital One Arena", Latitude: 38.9072, Longitude: -77.0369, Conference: "East", Division: "Southeast"},
	{Name: "Denver Nuggets", City: "Denver", State: "Colorado", Stadium: "Ball Arena", Latitude: 39.7392, Longitude: -104.9903, Conference: "West", Division: "Northwest"},
	{Name: "Minnesota Timberwolves", City: "Minneapolis", State: "Minnesota", Stadium: "Target Center", Latitude: 44.9778, Longitude: -93.265, Conference: "West", Division: "Northwest"},
	{Name: "Oklahoma City Thunder", City: "Oklahoma City", State: "Oklahoma", Stadium: "Paycom Center", Latitude: 35.4676, Longitude: -97.5164, Conference: "West", Division: "Northwest"},
	{Name: "Portland Trail Blazers", City: "Portland", State: "Oregon", Stadium: "Moda Center", Latitude: 45.5152, Longitude: -122.6784, Conference: "West", Division: "Northwest"},
	{Name: "Utah Jazz", City: "Salt Lake City", State: "Utah", Stadium: "Delta Center", Latitude: 40.7608, Longitude: -111.891, Conference: "West", Division: "Northwest"},
	{Name: "Golden State Warriors", City: "San Francisco", State: "California", Stadium: "Chase Center", Latitude: 37.7749, Longitude: -122.4194, Conference: "West", Division: "Pacific"},
	{Name: "Los Angeles Clippers", City: "Los Angeles", State: "California", Stadium: "Intuit Dome", Latitude: 34.0522, Longitude: -118.2437, Conference: "West", Division: "Pacific"},
	{Name: "Los Angeles Lakers", City: "Los Angeles", State: "California", Stadium: "Crypto.com Arena", Latitude: 34.0522, Longitude: -118.2437, Conference: "West", Division: "Pacific"},
	{Name: "Phoenix Suns", City: "Phoenix", State: "Arizona", Stadium: "Footprint Center", Latitude: 33.4484, Longitude: -112.074, Conference: "West", Division: "Pacific"},
	{Name: "Sacramento Kings", City: "Sacramento", State: "California", Stadium: "Golden 1 Center", Latitude: 38.5816, Longitude: -121.4944, Conference: "West", Division: "Pacific"},
	{Name: "Dallas Mavericks", City: "Dallas", State: "Texas", Stadium: "American Airlines Center", Latitude: 32.7767, Longitude: -96.797, Conference: "West", Division: "Southwest"},
	{Name: "Houston Rockets", City: "Houston", State: "Texas", Stadium: "Toyota Center", Latitude: 29.7604, Longitude: -95.3698, Conference: "West", Division: "Southwest"},
	{Name: "Memphis Grizzlies", City: "Memphis", State: "Tennessee", Stadium: "FedExForum", Latitude: 35.1495, Longitude: -90.049, Conference: "West", Division: "Southwest"},
	{Name: "New Orleans Pelicans", City: "New Orleans", State: "Louisiana", Stadium: "Smoothie King Center", Latitude: 29.9511, Longitude: -90.0715, Conference: "West", Division: "Southwest"},
	{Name: "San Antonio Spurs", City: "San Antonio", State: "Texas", Stadium: "AT&T Center", Latitude: 29.4241, Longitude: -98.4936, Conference: "West", Division: "Southwest"},
}
