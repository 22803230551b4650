package database

type codeBook struct {
	code        string
	name        string
	edition     string
	description string
	chapters    [][2]string
}

var standardCodeBooks = []codeBook{
	{
		code:        "IBC",
		name:        "International Building Code",
		edition:     "2021",
		description: "The International Building Code (IBC) is a model code that provides minimum requirements for building systems using prescriptive and performance-related provisions.",
		chapters: [][2]string{
			{"1", "Scope and Administration"},
			{"2", "Definitions"},
			{"3", "Use and Occupancy Classification"},
			{"4", "Special Detailed Requirements Based on Occupancy and Use"},
			{"5", "General Building Heights and Areas"},
			{"6", "Types of Construction"},
			{"7", "Fire and Smoke Protection Features"},
			{"8", "Interior Finishes"},
			{"9", "Fire Protection and Life Safety Systems"},
			{"10", "Means of Egress"},
			{"11", "Accessibility"},
			{"12", "Interior Environment"},
			{"13", "Energy Efficiency"},
			{"14", "Exterior Walls"},
			{"15", "Roof Assemblies and Rooftop Structures"},
			{"16", "Structural Design"},
			{"17", "Special Inspections and Tests"},
			{"18", "Soils and Foundations"},
			{"19", "Concrete"},
			{"20", "Aluminum"},
			{"21", "Masonry"},
			{"22", "Steel"},
			{"23", "Wood"},
			{"24", "Glass and Glazing"},
			{"25", "Gypsum Board, Gypsum Panel Products and Plaster"},
			{"26", "Plastic"},
			{"27", "Electrical"},
			{"28", "Mechanical Systems"},
			{"29", "Plumbing Systems"},
			{"30", "Elevators and Conveying Systems"},
			{"31", "Special Construction"},
			{"32", "Encroachments Into the Public Right-of-Way"},
			{"33", "Safeguards During Construction"},
			{"34", "Existing Buildings and Structures"},
			{"35", "Referenced Standards"},
		},
	},
	{
		code:        "IRC",
		name:        "International Residential Code",
		edition:     "2021",
		description: "The International Residential Code (IRC) is a comprehensive, stand-alone residential code for one- and two-family dwellings and townhouses.",
		chapters: [][2]string{
			{"1", "Scope and Administration"},
			{"2", "Definitions"},
			{"3", "Building Planning"},
			{"4", "Foundations"},
			{"5", "Floors"},
			{"6", "Wall Construction"},
			{"7", "Wall Covering"},
			{"8", "Roof-Ceiling Construction"},
			{"9", "Roof Assemblies"},
			{"10", "Chimneys and Fireplaces"},
			{"11", "Energy Efficiency"},
			{"12", "Mechanical Administration"},
			{"13", "General Mechanical System Requirements"},
			{"14", "Heating and Cooling Equipment and Appliances"},
			{"15", "Exhaust Systems"},
			{"16", "Duct Systems"},
			{"17", "Combustion Air"},
			{"18", "Chimneys and Vents"},
			{"19", "Special Appliances, Equipment and Systems"},
			{"20", "Boilers and Water Heaters"},
			{"21", "Hydronic Piping"},
			{"22", "Special Piping and Storage Systems"},
			{"23", "Solar Thermal Energy Systems"},
			{"24", "Fuel Gas"},
			{"25", "Plumbing Administration"},
			{"26", "General Plumbing Requirements"},
			{"27", "Plumbing Fixtures"},
			{"28", "Water Heaters"},
			{"29", "Water Supply and Distribution"},
			{"30", "Sanitary Drainage"},
			{"31", "Vents"},
			{"32", "Traps"},
			{"33", "Storm Drainage"},
			{"34", "General Requirements (Electrical)"},
			{"35", "Electrical Definitions"},
			{"36", "Services"},
			{"37", "Branch Circuit and Feeder Requirements"},
			{"38", "Wiring Methods"},
			{"39", "Power and Lighting Distribution"},
			{"40", "Devices and Luminaires"},
			{"41", "Appliance Installation"},
			{"42", "Swimming Pools"},
			{"43", "Class 2 Remote-Control, Signaling and Power-Limited Circuits"},
			{"44", "Referenced Standards"},
		},
	},
	{
		code:        "NEC",
		name:        "National Electrical Code",
		edition:     "2023",
		description: "NFPA 70, the National Electrical Code (NEC) is the benchmark for safe electrical design, installation, and inspection.",
		chapters: [][2]string{
			{"1", "General"},
			{"2", "Wiring and Protection"},
			{"3", "Wiring Methods and Materials"},
			{"4", "Equipment for General Use"},
			{"5", "Special Occupancies"},
			{"6", "Special Equipment"},
			{"7", "Special Conditions"},
			{"8", "Communications Systems"},
			{"9", "Tables"},
		},
	},
	{
		code:        "IPC",
		name:        "International Plumbing Code",
		edition:     "2021",
		description: "The International Plumbing Code (IPC) sets minimum regulations for plumbing facilities in terms of performance objectives and prescriptive requirements.",
		chapters: [][2]string{
			{"1", "Scope and Administration"},
			{"2", "Definitions"},
			{"3", "General Regulations"},
			{"4", "Fixtures, Faucets and Fixture Fittings"},
			{"5", "Water Heaters"},
			{"6", "Water Supply and Distribution"},
			{"7", "Sanitary Drainage"},
			{"8", "Indirect/Special Waste"},
			{"9", "Vents"},
			{"10", "Traps, Interceptors and Separators"},
			{"11", "Storm Drainage"},
			{"12", "Special Piping and Storage Systems"},
			{"13", "Referenced Standards"},
		},
	},
	{
		code:        "IMC",
		name:        "International Mechanical Code",
		edition:     "2021",
		description: "The International Mechanical Code (IMC) establishes minimum requirements for mechanical systems using prescriptive and performance-related provisions.",
		chapters: [][2]string{
			{"1", "Scope and Administration"},
			{"2", "Definitions"},
			{"3", "General Regulations"},
			{"4", "Ventilation"},
			{"5", "Exhaust Systems"},
			{"6", "Duct Systems"},
			{"7", "Combustion Air"},
			{"8", "Chimneys and Vents"},
			{"9", "Specific Appliances, Fireplaces and Solid Fuel-Burning Equipment"},
			{"10", "Boilers, Water Heaters and Pressure Vessels"},
			{"11", "Refrigeration"},
			{"12", "Hydronic Piping"},
			{"13", "Fuel Oil Piping and Storage"},
			{"14", "Solar Thermal Energy Systems"},
			{"15", "Referenced Standards"},
		},
	},
	{
		code:        "IECC",
		name:        "International Energy Conservation Code",
		edition:     "2021",
		description: "The International Energy Conservation Code (IECC) establishes minimum energy efficiency requirements for new buildings and additions/alterations to existing buildings.",
		chapters: [][2]string{
			{"C1", "Commercial - Scope and Administration"},
			{"C2", "Commercial - Definitions"},
			{"C3", "Commercial - General Requirements"},
			{"C4", "Commercial Energy Efficiency"},
			{"C5", "Commercial - Referenced Standards"},
			{"R1", "Residential - Scope and Administration"},
			{"R2", "Residential - Definitions"},
			{"R3", "Residential - General Requirements"},
			{"R4", "Residential Energy Efficiency"},
			{"R5", "Residential - Referenced Standards"},
		},
	},
	{
		code:        "IFGC",
		name:        "International Fuel Gas Code",
		edition:     "2021",
		description: "The International Fuel Gas Code (IFGC) addresses the design and installation of fuel gas systems and gas-fired appliances.",
		chapters: [][2]string{
			{"1", "Scope and Administration"},
			{"2", "Definitions"},
			{"3", "General Regulations"},
			{"4", "Gas Piping Installations"},
			{"5", "Chimneys and Vents"},
			{"6", "Specific Appliances"},
			{"7", "Gaseous Hydrogen Systems"},
			{"8", "Referenced Standards"},
		},
	},
	{
		code:        "OSHA",
		name:        "OSHA Construction Standards",
		edition:     "29 CFR 1926",
		description: "OSHA Construction Industry Standards (29 CFR 1926) cover safety and health regulations for the construction industry.",
		chapters: [][2]string{
			{"A", "General"},
			{"B", "General Interpretations"},
			{"C", "General Safety and Health Provisions"},
			{"D", "Occupational Health and Environmental Controls"},
			{"E", "Personal Protective and Lifesaving Equipment"},
			{"F", "Fire Protection and Prevention"},
			{"G", "Signs, Signals and Barricades"},
			{"H", "Materials Handling, Storage, Use and Disposal"},
			{"I", "Tools - Hand and Power"},
			{"J", "Welding and Cutting"},
			{"K", "Electrical"},
			{"L", "Scaffolds"},
			{"M", "Fall Protection"},
			{"N", "Helicopters, Hoists, Elevators and Conveyors"},
			{"O", "Motor Vehicles, Mechanized Equipment and Marine Operations"},
			{"P", "Excavations"},
			{"Q", "Concrete and Masonry Construction"},
			{"R", "Steel Erection"},
			{"S", "Underground Construction, Caissons, Cofferdams and Compressed Air"},
			{"T", "Demolition"},
			{"U", "Blasting and the Use of Explosives"},
			{"V", "Power Transmission and Distribution"},
			{"W", "Rollover Protective Structures; Overhead Protection"},
			{"X", "Stairways and Ladders"},
			{"Z", "Toxic and Hazardous Substances"},
			{"AA", "Reserved"},
			{"CC", "Cranes and Derricks in Construction"},
		},
	},
}
